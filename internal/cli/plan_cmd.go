package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/datemate/internal/cli/formatter"
	"github.com/alexanderramin/datemate/internal/domain"
	"github.com/alexanderramin/datemate/internal/intelligence"
)

var errNeedsTerminal = errors.New("the plan wizard needs an interactive terminal; pass --location, --interest and --budget instead")

// planAnswers is what the wizard collects before the conversation starts.
type planAnswers struct {
	Location  string
	Interests []string
	Budget    string
	When      string
	StartTime string
}

func (a planAnswers) complete() bool {
	return strings.TrimSpace(a.Location) != "" && len(a.Interests) > 0 && intelligence.ExtractBudget(a.Budget) != nil
}

// message renders the answers as the opening chat message, phrased so the
// keyword extractor picks every field up.
func (a planAnswers) message() string {
	parts := []string{strings.TrimSpace(a.Location) + "에서"}
	if len(a.Interests) > 0 {
		parts = append(parts, strings.Join(a.Interests, ", ")+" 좋아해")
	}
	if b := strings.TrimSpace(a.Budget); b != "" {
		parts = append(parts, "예산 "+b)
	}
	if a.When != "" && a.When != "오늘" {
		parts = append(parts, a.When)
	}
	if t := strings.TrimSpace(a.StartTime); t != "" {
		parts = append(parts, t+" 시작")
	}
	return strings.Join(parts, " ")
}

func newPlanCmd(app *App) *cobra.Command {
	var (
		answers planAnswers
		useTUI  bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Answer a few questions, then continue in chat",
		Long: `Collect location, interests, budget and start time with a short form,
send them as the first message and continue the conversation. Flags skip the
form when they already answer everything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !answers.complete() {
				if !app.interactive() {
					return errNeedsTerminal
				}
				if err := planWizard(&answers).Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(cmd.OutOrStdout(), msgGoodbye)
						return nil
					}
					return fmt.Errorf("plan wizard: %w", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runChat(ctx, app, cmd, newSessionID(), useTUI, answers.message())
		},
	}
	cmd.Flags().StringVar(&answers.Location, "location", "", "Area to plan in (e.g. 서울)")
	cmd.Flags().StringSliceVar(&answers.Interests, "interest", nil, "Interest, repeatable (e.g. 카페)")
	cmd.Flags().StringVar(&answers.Budget, "budget", "", "Total budget (e.g. 10만원)")
	cmd.Flags().StringVar(&answers.When, "when", "", "오늘, 내일, 모레 or 주말")
	cmd.Flags().StringVar(&answers.StartTime, "start", "", "Start time (e.g. 10:00)")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Continue in the full-screen chat view")
	return cmd
}

// datemateHuhTheme returns a custom huh theme using the Gruvbox palette.
func datemateHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[•] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func planWizard(a *planAnswers) *huh.Form {
	interests := make([]huh.Option[string], 0, len(domain.Categories))
	for _, c := range domain.Categories {
		interests = append(interests, huh.NewOption(c.Emoji()+" "+c.Label(), c.Label()))
	}
	if a.When == "" {
		a.When = "오늘"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("어디에서 데이트하실 건가요?").
				Placeholder("서울, 부산, 제주...").
				Value(&a.Location).
				Validate(validateLocation),
			huh.NewMultiSelect[string]().
				Title("어떤 곳을 좋아하세요?").
				Options(interests...).
				Value(&a.Interests).
				Validate(validateInterests),
			huh.NewInput().
				Title("예산은 어느 정도인가요?").
				Placeholder("10만원").
				Value(&a.Budget).
				Validate(validateBudget),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("언제 만나세요?").
				Options(huh.NewOptions("오늘", "내일", "모레", "주말")...).
				Value(&a.When),
			huh.NewInput().
				Title("몇 시에 시작할까요?").
				Description("비워두면 오전 10시").
				Placeholder("10:00").
				Value(&a.StartTime).
				Validate(validateStartTime),
		),
	).WithTheme(datemateHuhTheme()).WithShowHelp(false)
}

func validateLocation(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("지역을 입력해주세요")
	}
	return nil
}

func validateInterests(v []string) error {
	if len(v) == 0 {
		return errors.New("하나 이상 골라주세요")
	}
	return nil
}

func validateBudget(s string) error {
	if intelligence.ExtractBudget(s) == nil {
		return errors.New("예: 10만원, 50000원")
	}
	return nil
}

func validateStartTime(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if intelligence.ExtractStartTime(s) == nil {
		return errors.New("예: 10:00, 오후 2시")
	}
	return nil
}
