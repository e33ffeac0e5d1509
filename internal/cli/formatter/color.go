package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/datemate/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// CategoryStyle groups venue kinds into a few colors: heritage and
// exhibitions purple, food and drink yellow, outdoors green, the rest blue.
func CategoryStyle(c domain.Category) lipgloss.Style {
	switch c {
	case domain.CategoryCulturalSite, domain.CategoryMuseum, domain.CategoryGallery:
		return StylePurple
	case domain.CategoryCafe, domain.CategoryRestaurant:
		return StyleYellow
	case domain.CategoryPark, domain.CategoryBeach, domain.CategoryViewpoint:
		return StyleGreen
	default:
		return StyleBlue
	}
}

// CategoryBadge renders "emoji label" in the category's color.
func CategoryBadge(c domain.Category) string {
	return CategoryStyle(c).Render(c.Emoji() + " " + c.Label())
}

// StateBadge renders a conversation state as a short Korean label.
func StateBadge(s domain.ConversationState) string {
	switch s {
	case domain.StateInitialPlanning:
		return StyleBlue.Render("● 정보 수집 중")
	case domain.StateAwaitingUserSelection:
		return StyleYellow.Render("● 장소 선택 대기")
	case domain.StatePresentingResults:
		return StyleGreen.Render("● 일정 제안")
	case domain.StateModifyingPlan:
		return StylePurple.Render("● 일정 수정")
	case domain.StatePlanConfirmed:
		return StyleGreen.Render("✔ 확정")
	default:
		return StyleDim.Render("● " + string(s))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	line := strings.Repeat("─", lipgloss.Width(text))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(text), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
