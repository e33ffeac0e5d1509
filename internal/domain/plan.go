package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultPartySize is used when a plan does not specify how many people go.
const DefaultPartySize = 2

// Transportation is the leg from one plan item to the next.
type Transportation struct {
	Mode         TransportMode
	DurationMin  int
	DistanceKm   float64
	Cost         int
	Instructions []string
}

func (t Transportation) IsFree() bool {
	return t.Cost == 0
}

// PlanItem is one scheduled stop. Transport, when set, is the outbound leg
// to the following item.
type PlanItem struct {
	Start     Clock
	End       Clock
	Spot      Spot
	Transport *Transportation
	Note      string
	Priority  int
}

// DurationMin handles items that run past midnight.
func (i PlanItem) DurationMin() int {
	return i.Start.Until(i.End)
}

func (i PlanItem) TotalCost(partySize int) int {
	cost := i.Spot.VisitCost(partySize)
	if i.Transport != nil {
		cost += i.Transport.Cost
	}
	return cost
}

type DatePlan struct {
	ID               string
	Title            string
	Date             time.Time
	Items            []PlanItem
	PartySize        int
	TotalCost        int
	TotalDurationMin int
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Notes            string
	Tags             []string
}

func NewDatePlan(title string, date time.Time, partySize int, now time.Time) *DatePlan {
	if partySize <= 0 {
		partySize = DefaultPartySize
	}
	return &DatePlan{
		ID:        "plan_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		Title:     title,
		Date:      date,
		PartySize: partySize,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (p *DatePlan) party() int {
	if p.PartySize <= 0 {
		return DefaultPartySize
	}
	return p.PartySize
}

// Recalculate recomputes the aggregate cost and duration from the items.
// Every structural change must be followed by a call.
func (p *DatePlan) Recalculate() {
	cost, dur := 0, 0
	for _, it := range p.Items {
		cost += it.TotalCost(p.party())
		dur += it.DurationMin()
	}
	p.TotalCost = cost
	p.TotalDurationMin = dur
}

func (p *DatePlan) AddItem(item PlanItem) {
	p.Items = append(p.Items, item)
	p.Recalculate()
}

// RemoveItem drops the item at index i. The predecessor's outbound leg is
// left for the caller to re-link.
func (p *DatePlan) RemoveItem(i int) bool {
	if i < 0 || i >= len(p.Items) {
		return false
	}
	p.Items = append(p.Items[:i], p.Items[i+1:]...)
	p.Recalculate()
	return true
}

// ReplaceSpot swaps the spot referenced by item i. Times and transport are
// left for the caller to re-derive.
func (p *DatePlan) ReplaceSpot(i int, spot Spot) bool {
	if i < 0 || i >= len(p.Items) {
		return false
	}
	p.Items[i].Spot = spot
	p.Recalculate()
	return true
}

func (p *DatePlan) IsEmpty() bool {
	return len(p.Items) == 0
}

func (p *DatePlan) StartTime() (Clock, bool) {
	if len(p.Items) == 0 {
		return 0, false
	}
	return p.Items[0].Start, true
}

func (p *DatePlan) EndTime() (Clock, bool) {
	if len(p.Items) == 0 {
		return 0, false
	}
	return p.Items[len(p.Items)-1].End, true
}

func (p *DatePlan) IsWithinBudget(budget float64) bool {
	return float64(p.TotalCost) <= budget
}

// Categories returns the distinct categories in visiting order.
func (p *DatePlan) Categories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, it := range p.Items {
		if !seen[it.Spot.Category] {
			seen[it.Spot.Category] = true
			out = append(out, it.Spot.Category)
		}
	}
	return out
}

// Timeline returns each item's start as minutes from the first item's
// start, following the visiting order across midnight.
func (p *DatePlan) Timeline() []int {
	offsets := make([]int, len(p.Items))
	for i := 1; i < len(p.Items); i++ {
		offsets[i] = offsets[i-1] + p.Items[i-1].Start.Until(p.Items[i].Start)
	}
	return offsets
}

// TimeConflicts returns index pairs whose [start,end) intervals overlap.
func (p *DatePlan) TimeConflicts() [][2]int {
	offsets := p.Timeline()
	var out [][2]int
	for i := range p.Items {
		iEnd := offsets[i] + p.Items[i].DurationMin()
		for j := i + 1; j < len(p.Items); j++ {
			jEnd := offsets[j] + p.Items[j].DurationMin()
			if offsets[i] < jEnd && offsets[j] < iEnd {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}

func (p *DatePlan) HasTimeConflicts() bool {
	return len(p.TimeConflicts()) > 0
}

// Clone copies the plan deeply enough that mutating the copy's items,
// transport legs or tags leaves p untouched. Spots are shared.
func (p *DatePlan) Clone() *DatePlan {
	if p == nil {
		return nil
	}
	out := *p
	out.Items = make([]PlanItem, len(p.Items))
	for i, it := range p.Items {
		if it.Transport != nil {
			t := *it.Transport
			t.Instructions = append([]string(nil), it.Transport.Instructions...)
			it.Transport = &t
		}
		out.Items[i] = it
	}
	out.Tags = append([]string(nil), p.Tags...)
	return &out
}
