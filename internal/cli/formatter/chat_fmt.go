package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	UserPrefix  = "사용자: "
	AgentPrefix = "에이전트: "
)

// FormatAgentReply prefixes the first line of a reply and indents the rest
// under it.
func FormatAgentReply(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	indent := strings.Repeat(" ", lipgloss.Width(AgentPrefix))
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = indent + lines[i]
		}
	}
	return StylePurple.Render(AgentPrefix) + strings.Join(lines, "\n")
}

// FormatUserLine echoes user input the way the TUI history shows it.
func FormatUserLine(text string) string {
	return StyleBlue.Render(UserPrefix) + text
}
