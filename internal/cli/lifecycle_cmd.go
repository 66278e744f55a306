package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/fdalton/claimtrack/internal/cli/formatter"
	"github.com/fdalton/claimtrack/internal/domain"
)

func newMoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move FILE [STATUS]",
		Short: "Move an estimate to a new status",
		Long: "Move an estimate along the claim lifecycle. Without STATUS, an interactive\n" +
			"picker offers the allowed targets. Blocking goes through 'block', not 'move'.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := resolveEstimate(ctx, a, args[0])
			if err != nil {
				return err
			}

			var to domain.EstimateStatus
			if len(args) == 2 {
				to = domain.EstimateStatus(args[1])
			} else {
				if !a.Interactive {
					return fmt.Errorf("status argument is required in non-interactive mode")
				}
				to, err = pickTransition(e)
				if err != nil {
					return err
				}
			}

			updated, err := a.Lifecycle.Move(ctx, e.ID, to)
			if err != nil {
				return err
			}

			fmt.Printf("%s is now %s\n", updated.FileNumber, formatter.StatusBadge(updated.Status))
			return nil
		},
	}
}

// pickTransition offers the allowed targets from the estimate's current
// status. Blocked is filtered out; it has its own command.
func pickTransition(e *domain.ClaimEstimate) (domain.EstimateStatus, error) {
	var options []huh.Option[domain.EstimateStatus]
	for _, s := range domain.AllowedTransitions[e.Status] {
		if s == domain.StatusBlocked {
			continue
		}
		options = append(options, huh.NewOption(s.Label(), s))
	}
	if len(options) == 0 {
		return "", fmt.Errorf("%s is %s; no further transitions", e.FileNumber, e.Status.Label())
	}

	var to domain.EstimateStatus
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.EstimateStatus]().
				Title(fmt.Sprintf("Move %s to", e.FileNumber)).
				Options(options...).
				Value(&to),
		),
	).WithTheme(claimtrackHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", err
	}
	return to, nil
}

func newBlockCmd(a *App) *cobra.Command {
	var blockerType, name, reason string

	cmd := &cobra.Command{
		Use:   "block FILE",
		Short: "Mark an estimate blocked on an external dependency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := resolveEstimate(ctx, a, args[0])
			if err != nil {
				return err
			}

			bt := domain.BlockerType(blockerType)
			if blockerType == "" {
				if !a.Interactive {
					return fmt.Errorf("--type is required in non-interactive mode")
				}
				if err := runBlockForm(&bt, &name, &reason); err != nil {
					return err
				}
			}

			updated, err := a.Lifecycle.Block(ctx, e.ID, bt, name, reason)
			if err != nil {
				return err
			}

			fmt.Printf("%s blocked: %s\n", updated.FileNumber, bt.Label())
			return nil
		},
	}

	cmd.Flags().StringVar(&blockerType, "type", "", "Blocker type (scoper, public-adjuster, carrier, contractor, client, internal, documentation, other)")
	cmd.Flags().StringVar(&name, "who", "", "Person or party being waited on")
	cmd.Flags().StringVar(&reason, "reason", "", "What is being waited for")

	return cmd
}

func runBlockForm(bt *domain.BlockerType, name, reason *string) error {
	types := []domain.BlockerType{
		domain.BlockerScoper, domain.BlockerPublicAdjuster, domain.BlockerCarrier,
		domain.BlockerContractor, domain.BlockerClient, domain.BlockerInternal,
		domain.BlockerDocumentation, domain.BlockerOther,
	}
	options := make([]huh.Option[domain.BlockerType], 0, len(types))
	for _, t := range types {
		options = append(options, huh.NewOption(t.Label(), t))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.BlockerType]().
				Title("Blocked on").
				Options(options...).
				Value(bt),
			huh.NewInput().Title("Who (optional)").Value(name),
			huh.NewInput().Title("Reason (optional)").Value(reason),
		),
	).WithTheme(claimtrackHuhTheme()).WithShowHelp(false)

	return form.Run()
}

func newUnblockCmd(a *App) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "unblock FILE",
		Short: "Resolve an estimate's active blocker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := resolveEstimate(ctx, a, args[0])
			if err != nil {
				return err
			}

			updated, err := a.Lifecycle.Unblock(ctx, e.ID, note)
			if err != nil {
				return err
			}

			fmt.Printf("%s unblocked, back %s (%s blocked total)\n",
				updated.FileNumber,
				formatter.StatusBadge(updated.Status),
				formatter.Hours(updated.BlockedMinutes))
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Resolution note")

	return cmd
}

func newLogCmd(a *App) *cobra.Command {
	var revision bool

	cmd := &cobra.Command{
		Use:   "log FILE HOURS",
		Short: "Log worked time against an estimate",
		Long: "Log worked time in decimal hours (e.g. 1.5) or minutes with an 'm' suffix\n" +
			"(e.g. 90m). Use --revision for rework time after a carrier kickback.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := resolveEstimate(ctx, a, args[0])
			if err != nil {
				return err
			}

			hours, err := parseHours(args[1])
			if err != nil {
				return err
			}

			if err := a.Estimates.LogTime(ctx, e.ID, hours, revision); err != nil {
				return err
			}

			bucket := "active"
			if revision {
				bucket = "revision"
			}
			fmt.Printf("Logged %.2fh %s time on %s\n", hours, bucket, e.FileNumber)
			return nil
		},
	}

	cmd.Flags().BoolVar(&revision, "revision", false, "Count as revision (rework) time")

	return cmd
}

// parseHours accepts decimal hours ("1.5") or minutes with a suffix ("90m").
func parseHours(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if m, ok := strings.CutSuffix(s, "m"); ok {
		minutes, err := strconv.Atoi(m)
		if err != nil {
			return 0, fmt.Errorf("invalid minutes %q", s)
		}
		return float64(minutes) / 60, nil
	}
	hours, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours %q", s)
	}
	return hours, nil
}

func newEventsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "events FILE",
		Short: "Show an estimate's event history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := resolveEstimate(ctx, a, args[0])
			if err != nil {
				return err
			}

			events, err := a.Estimates.ListEvents(ctx, e.ID)
			if err != nil {
				return err
			}

			fmt.Print(formatter.EventLog(events))
			return nil
		},
	}
}
