package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/datemate/internal/cli/formatter"
	"github.com/alexanderramin/datemate/internal/dialog"
	"github.com/alexanderramin/datemate/internal/domain"
)

const chatChromeHeight = 3 // status line, input line, spacer

// replyMsg carries the result of one dialog turn back into the model.
type replyMsg struct {
	reply dialog.Reply
	plan  *domain.DatePlan
	err   error
}

// chatModel is the full-screen chat: a scrolling transcript above a
// single-line input.
type chatModel struct {
	ctx       context.Context
	app       *App
	sessionID string

	input    textinput.Model
	viewport viewport.Model
	history  []string

	first   string
	started bool
	waiting bool
	state   domain.ConversationState
}

func newChatModel(ctx context.Context, app *App, sessionID, first string) chatModel {
	ti := textinput.New()
	ti.Prompt = formatter.StyleBlue.Render(formatter.UserPrefix)
	ti.Placeholder = "메시지를 입력하세요"
	ti.CharLimit = 1000
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	m := chatModel{
		ctx:       ctx,
		app:       app,
		sessionID: sessionID,
		input:     ti,
		viewport:  viewport.New(80, 20),
		first:     strings.TrimSpace(first),
		state:     domain.StateInitialPlanning,
	}
	m.history = []string{
		formatter.StyleHeader.Render(msgWelcome),
		formatter.Dim("종료하려면 'quit', 'exit' 또는 Esc를 누르세요."),
		"",
	}
	if m.first != "" {
		m.history = append(m.history, formatter.FormatUserLine(m.first), "")
		m.waiting = true
	}
	m.refresh()
	return m
}

func (m chatModel) Init() tea.Cmd {
	if m.first != "" {
		return m.turn(m.first)
	}
	return nil
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chatChromeHeight, 1)
		m.input.Width = max(msg.Width-lipgloss.Width(formatter.UserPrefix)-1, 10)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case tea.KeyEnter:
			return m.submit()
		}

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.addLine(formatter.StyleRed.Render("⚠️ " + msg.err.Error()))
			return m, nil
		}
		m.started = true
		m.state = msg.reply.State
		m.addLine(formatter.FormatAgentReply(msg.reply.Text))
		if msg.plan != nil {
			m.addLine(strings.TrimRight(formatter.FormatPlan(msg.plan), "\n"))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) submit() (tea.Model, tea.Cmd) {
	if m.waiting {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.input.Reset()
	m.addLine(formatter.FormatUserLine(text))
	if isQuit(text) {
		m.addLine(msgGoodbye)
		return m, tea.Quit
	}
	m.waiting = true
	return m, m.turn(text)
}

// turn runs one dialog call off the update loop.
func (m chatModel) turn(text string) tea.Cmd {
	ctx, d, id, started := m.ctx, m.app.Dialog, m.sessionID, m.started
	return func() tea.Msg {
		call := d.HandleUserInput
		if !started {
			call = d.StartConversation
		}
		reply, err := call(ctx, id, text)
		if err != nil {
			return replyMsg{err: err}
		}
		out := replyMsg{reply: reply}
		if reply.State == domain.StatePlanConfirmed {
			if snap, ok := d.Snapshot(id); ok {
				out.plan = snap.Plan
			}
		}
		return out
	}
}

func (m *chatModel) addLine(line string) {
	m.history = append(m.history, line, "")
	m.refresh()
}

func (m *chatModel) refresh() {
	m.viewport.SetContent(strings.Join(m.history, "\n"))
	m.viewport.GotoBottom()
}

func (m chatModel) View() string {
	status := formatter.StateBadge(m.state)
	if m.waiting {
		status = formatter.Dim(msgThinking)
	}
	return m.viewport.View() + "\n" + status + "  " + formatter.Dim(m.sessionID) + "\n" + m.input.View()
}

func runChatTUI(ctx context.Context, app *App, sessionID, first string) error {
	p := tea.NewProgram(newChatModel(ctx, app, sessionID, first), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
