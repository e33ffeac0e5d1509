package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/datemate/internal/domain"
)

// FormatPlan renders a confirmed plan as a timeline box.
func FormatPlan(p *domain.DatePlan) string {
	if p == nil || p.IsEmpty() {
		return Dim("아직 만들어진 일정이 없어요.") + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s · %d명 · %s · %s\n\n",
		p.Date.Format("2006-01-02"), p.PartySize,
		StyleGreen.Render(domain.FormatWon(p.TotalCost)), FormatMinutes(p.TotalDurationMin))

	for i, it := range p.Items {
		fmt.Fprintf(&b, "%s  %s %s\n",
			StyleBlue.Render(it.Start.String()+"-"+it.End.String()),
			it.Spot.Emoji(), Bold(it.Spot.Name))
		if it.Note != "" {
			fmt.Fprintf(&b, "             %s\n", Dim(it.Note))
		}
		if t := it.Transport; t != nil && i < len(p.Items)-1 {
			fmt.Fprintf(&b, "      │      %s\n", Dim(fmt.Sprintf("%s %d분 · %s", t.Mode.Label(), t.DurationMin, domain.FormatWon(t.Cost))))
		}
	}
	return RenderBox(p.Title, strings.TrimRight(b.String(), "\n"))
}
