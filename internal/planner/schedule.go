package planner

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/datemate/internal/domain"
)

// closedWarning is appended to an item's note when the venue is likely
// closed at its slot.
const closedWarning = "이 시간에는 운영하지 않을 수 있어요"

var (
	clockToken = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	hourToken  = regexp.MustCompile(`(오전|오후|아침|저녁|밤)?\s*(\d{1,2})\s*시(?:\s*(\d{1,2})\s*분|\s*(반))?`)
)

// ParseStartTime understands "14:30", "10시", "오후 2시", "저녁 7시 반" and
// "오전 9시 20분". Anything else yields DefaultStart.
func ParseStartTime(s string) domain.Clock {
	s = strings.TrimSpace(s)
	if m := clockToken.FindString(s); m != "" {
		if c, err := domain.ParseClock(m); err == nil {
			return c
		}
		return DefaultStart
	}

	m := hourToken.FindStringSubmatch(s)
	if m == nil {
		return DefaultStart
	}
	hour, _ := strconv.Atoi(m[2])
	minute := 0
	switch {
	case m[3] != "":
		minute, _ = strconv.Atoi(m[3])
	case m[4] != "":
		minute = 30
	}

	switch m[1] {
	case "오후", "저녁", "밤":
		if hour < 12 {
			hour += 12
		}
	case "오전", "아침":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 || minute > 59 {
		return DefaultStart
	}
	return domain.NewClock(hour, minute)
}

// AllocateTimeSlots gives each spot its duration plus SpotBuffer, with a
// TravelGap before every following stop.
func AllocateTimeSlots(spots []domain.Spot, start domain.Clock) []domain.PlanItem {
	items := make([]domain.PlanItem, 0, len(spots))
	at := start
	for i, s := range spots {
		end := at.Add(s.DurationMin + SpotBuffer)
		items = append(items, domain.PlanItem{
			Start:    at,
			End:      end,
			Spot:     s,
			Note:     visitNote(s),
			Priority: i + 1,
		})
		at = end.Add(TravelGap)
	}
	return items
}

// RecalculateScheduleTimes keeps the first item fixed and re-times the
// rest: each starts after its predecessor's outbound leg (TravelGap when
// unknown) and keeps its own duration. Notes are refreshed for the plan's
// weekday.
func RecalculateScheduleTimes(plan *domain.DatePlan) {
	items := plan.Items
	for i := 1; i < len(items); i++ {
		prev := items[i-1]
		gap := TravelGap
		if prev.Transport != nil {
			gap = prev.Transport.DurationMin
		}
		dur := items[i].DurationMin()
		items[i].Start = prev.End.Add(gap)
		items[i].End = items[i].Start.Add(dur)
	}
	annotateClosures(items, plan.Date.Weekday())
}

func annotateClosures(items []domain.PlanItem, day time.Weekday) {
	for i := range items {
		note := visitNote(items[i].Spot)
		if !items[i].Spot.IsOpenAt(items[i].Start, day) {
			note += " (⚠️ " + closedWarning + ")"
		}
		items[i].Note = note
	}
}

func visitNote(s domain.Spot) string {
	return s.Category.Label() + " 방문"
}

// MayBeClosed reports whether the planner flagged the item's venue as
// possibly closed at its slot.
func MayBeClosed(item domain.PlanItem) bool {
	return strings.Contains(item.Note, closedWarning)
}
