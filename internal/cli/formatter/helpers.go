package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(title) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatMinutes renders minutes as "2시간 15분", "3시간" or "45분".
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0분"
	}
	h, m := min/60, min%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%d시간 %d분", h, m)
	case h > 0:
		return fmt.Sprintf("%d시간", h)
	default:
		return fmt.Sprintf("%d분", m)
	}
}

// RatingStars renders a 0-5 rating as five stars plus the number, e.g.
// "★★★★☆ 4.4". Halves round down.
func RatingStars(r float64) string {
	if r < 0 {
		r = 0
	}
	if r > 5 {
		r = 5
	}
	full := int(r)
	stars := strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
	return StyleYellow.Render(stars) + fmt.Sprintf(" %.1f", r)
}

// TruncID returns the first 12 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 12 {
		id = id[:12]
	}
	return StyleDim.Render(id)
}
