package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/datemate/internal/cli/formatter"
	"github.com/alexanderramin/datemate/internal/domain"
	"github.com/alexanderramin/datemate/internal/intelligence"
	"github.com/alexanderramin/datemate/internal/repository"
)

func newSpotsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spots",
		Short: "Browse the venue catalog",
	}
	cmd.AddCommand(
		newSpotsListCmd(app),
		newSpotsShowCmd(app),
	)
	return cmd
}

func newSpotsListCmd(app *App) *cobra.Command {
	var (
		location  string
		interests []string
		budget    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Search venues by area, interest and budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if location == "" {
				all, err := app.Catalog.List(ctx)
				if err != nil {
					return fmt.Errorf("listing spots: %w", err)
				}
				spots := make([]domain.Spot, len(all))
				for i, s := range all {
					spots[i] = *s
				}
				fmt.Fprintln(out, formatter.Header(fmt.Sprintf("전체 장소 (%d)", len(spots))))
				fmt.Fprint(out, formatter.FormatSpotList(spots))
				return nil
			}

			q := &domain.Query{Location: &location, Interests: interests}
			if budget != "" {
				if q.Budget = intelligence.ExtractBudget(budget); q.Budget == nil {
					return fmt.Errorf("cannot read budget %q (try 10만원 or 50000원)", budget)
				}
			}
			spots, err := app.Catalog.Search(ctx, location, interests, q.BudgetPerSpot())
			if err != nil {
				return fmt.Errorf("searching spots: %w", err)
			}
			fmt.Fprintln(out, formatter.Header(location+" 추천 장소"))
			fmt.Fprint(out, formatter.FormatSpotList(spots))
			return nil
		},
	}
	cmd.Flags().StringVarP(&location, "location", "l", "", "Area, address fragment or venue id (empty lists everything)")
	cmd.Flags().StringSliceVarP(&interests, "interest", "i", nil, "Interest, repeatable (e.g. 카페)")
	cmd.Flags().StringVarP(&budget, "budget", "b", "", "Total budget for the date (e.g. 10만원)")
	return cmd
}

func newSpotsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one venue in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spot, err := app.Catalog.Get(cmd.Context(), args[0])
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("no spot with id %q", args[0])
			}
			if err != nil {
				return fmt.Errorf("loading spot: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSpotDetail(*spot))
			return nil
		},
	}
}
