package planner

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/datemate/internal/domain"
)

const descriptionExcerpt = 50

// Summary renders the plan as the chat reply shown to the user.
func Summary(plan *domain.DatePlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📅 %s\n\n", plan.Title)
	b.WriteString("📊 요약 정보\n")
	fmt.Fprintf(&b, "   • 총 %d개 장소\n", len(plan.Items))
	fmt.Fprintf(&b, "   • 예상 비용: %s\n", domain.FormatWon(plan.TotalCost))
	fmt.Fprintf(&b, "   • 총 소요시간: %d시간 %d분\n\n", plan.TotalDurationMin/60, plan.TotalDurationMin%60)

	b.WriteString("🗓️ 상세 일정\n")
	for i, it := range plan.Items {
		fmt.Fprintf(&b, "%s %d. %s\n", it.Spot.Emoji(), i+1, it.Spot.Name)
		fmt.Fprintf(&b, "   ⏰ %s - %s\n", it.Start, it.End)
		fmt.Fprintf(&b, "   💰 %s\n", domain.FormatWon(it.Spot.EstimatedCost))
		if it.Spot.Description != "" {
			fmt.Fprintf(&b, "   📍 %s\n", excerpt(it.Spot.Description, descriptionExcerpt))
		}
		if MayBeClosed(it) {
			fmt.Fprintf(&b, "   ⚠️ %s\n", closedWarning)
		}
		if t := it.Transport; t != nil {
			fmt.Fprintf(&b, "   🚶 다음 장소까지: %s (%d분, %s)\n", t.Mode.Label(), t.DurationMin, domain.FormatWon(t.Cost))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
