package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fdalton/claimtrack/internal/app"
	"github.com/fdalton/claimtrack/internal/cli/formatter"
)

func newScorecardCmd(a *App) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "scorecard [ESTIMATOR]",
		Short: "Weekly productivity scorecard for one estimator",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			profile, err := resolveEstimator(ctx, a, ref)
			if err != nil {
				return err
			}

			req := app.ScorecardRequest{EstimatorID: profile.ID}
			if week != "" {
				req.WeekStart, err = time.Parse("2006-01-02", week)
				if err != nil {
					return fmt.Errorf("invalid week %q: %w", week, err)
				}
			}

			view, err := a.Reports.Scorecard(ctx, req)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Scorecard(view))
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date inside the week to report (YYYY-MM-DD, defaults to this week)")

	return cmd
}

func newTeamCmd(a *App) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "team",
		Short: "Weekly report across all active estimators",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var req app.TeamReportRequest
			if week != "" {
				start, err := time.Parse("2006-01-02", week)
				if err != nil {
					return fmt.Errorf("invalid week %q: %w", week, err)
				}
				req.WeekStart = start
			}

			view, err := a.Reports.TeamReport(ctx, req)
			if err != nil {
				return err
			}

			fmt.Print(formatter.TeamReport(view))
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date inside the week to report (YYYY-MM-DD, defaults to this week)")

	return cmd
}
