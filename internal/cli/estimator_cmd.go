package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fdalton/claimtrack/internal/cli/formatter"
	"github.com/fdalton/claimtrack/internal/domain"
)

func newEstimatorCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimator",
		Short: "Manage estimator profiles",
	}

	cmd.AddCommand(
		newEstimatorAddCmd(a),
		newEstimatorListCmd(a),
		newEstimatorTargetsCmd(a),
	)

	return cmd
}

func newEstimatorAddCmd(a *App) *cobra.Command {
	var userID, name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an estimator profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.EstimatorProfile{
				UserID:      userID,
				DisplayName: name,
			}
			if err := a.Estimators.Create(context.Background(), p); err != nil {
				return err
			}
			fmt.Printf("Created estimator %s (%s)\n", p.DisplayName, p.UserID)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Login handle, e.g. jdoe")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newEstimatorListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active estimators",
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := a.Estimators.ListActive(context.Background())
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Println("No estimators found.")
				return nil
			}

			headers := []string{"USER", "NAME", "$/HR TARGET", "FILES/WK TARGET"}
			rows := make([][]string, 0, len(profiles))
			for _, p := range profiles {
				dph := "-"
				if p.TargetDollarsPerHour != nil {
					dph = formatter.Money(*p.TargetDollarsPerHour)
				}
				epw := "-"
				if p.TargetEstimatesPerWeek != nil {
					epw = fmt.Sprintf("%d", *p.TargetEstimatesPerWeek)
				}
				rows = append(rows, []string{p.UserID, p.DisplayName, dph, epw})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newEstimatorTargetsCmd(a *App) *cobra.Command {
	var dollarsPerHour, maxRevisionRate, maxCycleDays float64
	var estimatesPerWeek int

	cmd := &cobra.Command{
		Use:   "targets ESTIMATOR",
		Short: "Set an estimator's weekly performance targets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveEstimator(ctx, a, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("dollars-per-hour") {
				p.TargetDollarsPerHour = &dollarsPerHour
			}
			if cmd.Flags().Changed("estimates-per-week") {
				p.TargetEstimatesPerWeek = &estimatesPerWeek
			}
			if cmd.Flags().Changed("max-revision-rate") {
				p.TargetMaxRevisionRate = &maxRevisionRate
			}
			if cmd.Flags().Changed("max-cycle-days") {
				p.TargetMaxCycleDays = &maxCycleDays
			}

			if err := a.Estimators.Update(ctx, p); err != nil {
				return err
			}

			fmt.Printf("Updated targets for %s\n", p.DisplayName)
			return nil
		},
	}

	cmd.Flags().Float64Var(&dollarsPerHour, "dollars-per-hour", 0, "Target dollars per hour")
	cmd.Flags().IntVar(&estimatesPerWeek, "estimates-per-week", 0, "Target estimates per week")
	cmd.Flags().Float64Var(&maxRevisionRate, "max-revision-rate", 0, "Max acceptable revisions per estimate")
	cmd.Flags().Float64Var(&maxCycleDays, "max-cycle-days", 0, "Max acceptable average days held")

	return cmd
}
