package dialog

import "time"

// planDate resolves a relative date token against now. Unknown tokens,
// including 이번주 and 다음주, plan for today.
func planDate(token string, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch token {
	case "내일":
		return today.AddDate(0, 0, 1)
	case "모레":
		return today.AddDate(0, 0, 2)
	case "토요일", "주말":
		return nextWeekday(today, time.Saturday)
	case "일요일":
		return nextWeekday(today, time.Sunday)
	default:
		return today
	}
}

// nextWeekday returns the first day on or after from that falls on wd.
func nextWeekday(from time.Time, wd time.Weekday) time.Time {
	diff := (int(wd) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, diff)
}
