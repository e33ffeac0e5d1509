package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/datemate/internal/domain"
)

// FormatSpotList renders catalog search results as a table.
func FormatSpotList(spots []domain.Spot) string {
	if len(spots) == 0 {
		return Dim("조건에 맞는 장소가 없어요.") + "\n"
	}
	rows := make([][]string, len(spots))
	for i, s := range spots {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			TruncID(s.ID),
			Bold(s.Name),
			CategoryBadge(s.Category),
			s.Location.Name,
			fmt.Sprintf("%.1f", s.Rating),
			domain.FormatWon(s.EstimatedCost),
			FormatMinutes(s.DurationMin),
		}
	}
	return RenderTable(
		[]string{"#", "ID", "이름", "분류", "지역", "평점", "비용", "소요"},
		rows, 0, 5, 6,
	)
}

var weekdayOrder = []string{"월", "화", "수", "목", "금", "토", "일"}

// FormatSpotDetail renders one venue with its hours and notes.
func FormatSpotDetail(s domain.Spot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", CategoryBadge(s.Category), TruncID(s.ID))
	fmt.Fprintf(&b, "📍 %s\n", s.Location.Address)
	fmt.Fprintf(&b, "⭐ %s  (%s개 리뷰)\n", RatingStars(s.Rating), domain.FormatCount(s.ReviewCount))
	fmt.Fprintf(&b, "💰 %s · %s\n", domain.FormatWon(s.EstimatedCost), s.PriceRange.Label())
	fmt.Fprintf(&b, "⏱️ 약 %s\n", FormatMinutes(s.DurationMin))
	if s.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", s.Description)
	}

	if len(s.OpeningHours) > 0 {
		b.WriteString("\n" + Header("운영 시간") + "\n")
		for _, d := range weekdayOrder {
			if h, ok := s.OpeningHours[d]; ok {
				fmt.Fprintf(&b, "  %s  %s\n", d, h)
			}
		}
	}
	writeList(&b, "추천 포인트", s.Highlights)
	writeList(&b, "팁", s.Tips)

	var extras []string
	if s.Parking {
		extras = append(extras, "🅿️ 주차 가능")
	}
	if s.Accessibility != "" {
		extras = append(extras, "♿ "+s.Accessibility)
	}
	if s.Contact != "" {
		extras = append(extras, "☎️ "+s.Contact)
	}
	if s.Website != "" {
		extras = append(extras, "🔗 "+s.Website)
	}
	if len(extras) > 0 {
		b.WriteString("\n" + Dim(strings.Join(extras, "  ")) + "\n")
	}
	return RenderBox(s.Name, strings.TrimRight(b.String(), "\n"))
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n" + Header(title) + "\n")
	for _, it := range items {
		fmt.Fprintf(b, "  • %s\n", it)
	}
}
