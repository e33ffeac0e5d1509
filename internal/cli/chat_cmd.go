package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderramin/datemate/internal/cli/formatter"
	"github.com/alexanderramin/datemate/internal/dialog"
	"github.com/alexanderramin/datemate/internal/domain"
)

const (
	msgWelcome   = "데이트 플래너 챗봇에 오신 것을 환영합니다!"
	msgQuitHint  = "종료하려면 'quit' 또는 'exit'을 입력하세요."
	msgNeedFirst = "초기 질문이 필요합니다."
	msgGoodbye   = "대화를 종료합니다."
	msgThinking  = "일정을 고민하고 있어요..."
)

func newChatCmd(app *App) *cobra.Command {
	var (
		sessionID string
		useTUI    bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Plan a date by chatting with the agent",
		Long: `Start a conversation with the date planning agent. Describe where
you want to go, what you like and your budget; the agent asks for anything
missing, suggests venues and builds an itinerary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sessionID == "" {
				sessionID = newSessionID()
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runChat(ctx, app, cmd, sessionID, useTUI, "")
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "Session identifier (default: generated)")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Full-screen chat view (needs a terminal)")
	return cmd
}

// runChat picks the TUI or the line loop. first, when set, is sent as the
// opening message.
func runChat(ctx context.Context, app *App, cmd *cobra.Command, sessionID string, useTUI bool, first string) error {
	app.logger().Debug("chat session started", zap.String("session_id", sessionID), zap.Bool("tui", useTUI))
	if useTUI && app.interactive() {
		return runChatTUI(ctx, app, sessionID, first)
	}
	return newChatLoop(app, sessionID, cmd.InOrStdin(), cmd.OutOrStdout()).run(ctx, first)
}

func isQuit(text string) bool {
	return strings.EqualFold(text, "quit") || strings.EqualFold(text, "exit")
}

// chatLoop is the line-oriented conversation.
type chatLoop struct {
	app       *App
	sessionID string
	in        io.Reader
	out       io.Writer
}

func newChatLoop(app *App, sessionID string, in io.Reader, out io.Writer) *chatLoop {
	return &chatLoop{app: app, sessionID: sessionID, in: in, out: out}
}

func (l *chatLoop) run(ctx context.Context, first string) error {
	fmt.Fprintln(l.out, formatter.StyleHeader.Render(msgWelcome))
	fmt.Fprintln(l.out, formatter.Dim(msgQuitHint))
	fmt.Fprintln(l.out)

	text := strings.TrimSpace(first)
	if text == "" {
		var err error
		if text, err = l.prompt(ctx); err != nil {
			return l.finish(err)
		}
		if text == "" {
			fmt.Fprintln(l.out, msgNeedFirst)
			return nil
		}
	} else {
		fmt.Fprintln(l.out, formatter.FormatUserLine(text))
	}
	if isQuit(text) {
		fmt.Fprintln(l.out, msgGoodbye)
		return nil
	}

	reply, err := l.turn(ctx, text, l.app.Dialog.StartConversation)
	if err != nil {
		return l.finish(err)
	}
	l.show(reply)

	for {
		text, err := l.prompt(ctx)
		if err != nil {
			return l.finish(err)
		}
		if text == "" {
			continue
		}
		if isQuit(text) {
			fmt.Fprintln(l.out, msgGoodbye)
			return nil
		}
		reply, err := l.turn(ctx, text, l.app.Dialog.HandleUserInput)
		if err != nil {
			return l.finish(err)
		}
		l.show(reply)
	}
}

type turnFunc func(ctx context.Context, sessionID, text string) (dialog.Reply, error)

func (l *chatLoop) turn(ctx context.Context, text string, fn turnFunc) (dialog.Reply, error) {
	if l.app.interactive() {
		stop := formatter.StartSpinner(l.out, msgThinking)
		defer stop()
	}
	return fn(ctx, l.sessionID, text)
}

// prompt prints the user prefix and reads one line. Interrupts win over a
// blocked read.
func (l *chatLoop) prompt(ctx context.Context) (string, error) {
	fmt.Fprint(l.out, formatter.StyleBlue.Render(formatter.UserPrefix))

	type line struct {
		text string
		err  error
	}
	ch := make(chan line, 1)
	go func() {
		text, err := readPromptLine(l.in)
		ch <- line{text, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return strings.TrimSpace(r.text), r.err
	}
}

func (l *chatLoop) show(reply dialog.Reply) {
	fmt.Fprintln(l.out, formatter.FormatAgentReply(reply.Text))
	if reply.State == domain.StatePlanConfirmed {
		if snap, ok := l.app.Dialog.Snapshot(l.sessionID); ok && snap.Plan != nil {
			fmt.Fprintln(l.out)
			fmt.Fprint(l.out, formatter.FormatPlan(snap.Plan))
		}
	}
	fmt.Fprintln(l.out)
}

// finish turns end of input and interrupts into a normal goodbye.
func (l *chatLoop) finish(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(l.out)
		fmt.Fprintln(l.out, msgGoodbye)
		return nil
	}
	return err
}
