package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderramin/datemate/internal/api"
	"github.com/alexanderramin/datemate/internal/domain"
)

// Catalog is the venue lookup surface the CLI and HTTP API share.
type Catalog interface {
	api.Catalog
	List(ctx context.Context) ([]*domain.Spot, error)
}

// GlobalOptions carries the persistent flags to Bootstrap.
type GlobalOptions struct {
	Verbose bool
	DBPath  string
}

// App holds references to everything CLI commands need.
type App struct {
	Dialog  api.Dialog
	Catalog Catalog
	Logger  *zap.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool

	// Bootstrap wires Dialog, Catalog and Logger once global flags are
	// parsed. Nil when the App is pre-wired (tests).
	Bootstrap func(ctx context.Context, opts GlobalOptions) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// NewRootCmd creates the top-level "datemate" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var opts GlobalOptions

	root := &cobra.Command{
		Use:           "datemate",
		Short:         "Conversational date planner",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Bootstrap == nil {
				return nil
			}
			if err := app.Bootstrap(cmd.Context(), opts); err != nil {
				return fmt.Errorf("starting datemate: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log at debug level")
	root.PersistentFlags().StringVar(&opts.DBPath, "db", "", "Venue catalog database (default $DATEMATE_DB or in-memory)")

	root.AddCommand(
		newChatCmd(app),
		newPlanCmd(app),
		newSpotsCmd(app),
		newServeCmd(app),
	)

	return root
}

// newSessionID returns "session_" plus eight hex characters.
func newSessionID() string {
	id := uuid.New()
	return fmt.Sprintf("session_%x", id[:4])
}
