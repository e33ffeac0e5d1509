package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/datemate/internal/api"
)

func newServeCmd(app *App) *cobra.Command {
	cfg := api.Config{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat and catalog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := api.NewServer(app.Dialog, app.Catalog, app.logger(), cfg)
			fmt.Fprintf(cmd.OutOrStdout(), "datemate listening on %s\n", cfg.Addr)
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", envOr("DATEMATE_HTTP_ADDR", api.DefaultAddr), "Listen address")
	cmd.Flags().Float64Var(&cfg.SessionRate, "session-rate", api.DefaultSessionRate, "Messages per second allowed per session")
	cmd.Flags().IntVar(&cfg.SessionBurst, "session-burst", api.DefaultSessionBurst, "Message burst allowed per session")
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
