package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/fdalton/claimtrack/internal/app"
	"github.com/fdalton/claimtrack/internal/cli/formatter"
	"github.com/fdalton/claimtrack/internal/crm"
	"github.com/fdalton/claimtrack/internal/domain"
)

func newAddCmd(a *App) *cobra.Command {
	var fileNumber, client, carrier, claimNum, policyNum, peril, estimator, notes, pasteFile string
	var severity int
	var value float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new claim estimate",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			e := &domain.ClaimEstimate{
				FileNumber:   fileNumber,
				ClientName:   client,
				Carrier:      carrier,
				ClaimNumber:  claimNum,
				PolicyNumber: policyNum,
				Peril:        peril,
				Notes:        notes,
			}
			if cmd.Flags().Changed("severity") {
				s := severity
				e.Severity = &s
			}
			if cmd.Flags().Changed("value") {
				v := value
				e.EstimateValue = &v
			}

			if pasteFile != "" {
				raw, err := os.ReadFile(pasteFile)
				if err != nil {
					return fmt.Errorf("reading paste file: %w", err)
				}
				prefillFromPaste(e, crm.Parse(string(raw)))
			}

			profile, err := resolveEstimator(ctx, a, estimator)
			if err != nil {
				return err
			}
			e.EstimatorID = profile.ID

			if a.Interactive {
				// Known carriers feed input suggestions; a lookup failure
				// just means no suggestions.
				carriers, _ := a.Estimates.ListCarriers(ctx)
				if err := runAddForm(e, carriers); err != nil {
					return err
				}
			}

			if err := a.Estimates.Create(ctx, e); err != nil {
				return err
			}

			fmt.Printf("Created estimate %s for %s\n", e.FileNumber, e.ClientName)
			return nil
		},
	}

	cmd.Flags().StringVar(&fileNumber, "file", "", "Claim file number")
	cmd.Flags().StringVar(&client, "client", "", "Client name")
	cmd.Flags().StringVar(&carrier, "carrier", "", "Insurance carrier")
	cmd.Flags().StringVar(&claimNum, "claim", "", "Carrier claim number")
	cmd.Flags().StringVar(&policyNum, "policy", "", "Policy number")
	cmd.Flags().StringVar(&peril, "peril", "", "Peril category (wind, hail, water, ...)")
	cmd.Flags().IntVar(&severity, "severity", 0, "Severity 1-5")
	cmd.Flags().Float64Var(&value, "value", 0, "Estimate value in dollars")
	cmd.Flags().StringVar(&estimator, "estimator", "", "Estimator user id (defaults to configured estimator)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&pasteFile, "paste-file", "", "Prefill fields from a pasted CRM text file")

	return cmd
}

// prefillFromPaste fills empty estimate fields from a CRM parse. Explicit
// flags always win over parsed values.
func prefillFromPaste(e *domain.ClaimEstimate, p crm.ParsedClaim) {
	if e.FileNumber == "" {
		e.FileNumber = p.FileNumber
	}
	if e.ClientName == "" {
		e.ClientName = p.ClientName
	}
	if e.Carrier == "" {
		e.Carrier = p.Carrier
	}
	if e.ClaimNumber == "" {
		e.ClaimNumber = p.ClaimNumber
	}
	if e.PolicyNumber == "" {
		e.PolicyNumber = p.PolicyNumber
	}
	if e.Peril == "" {
		e.Peril = p.Peril
	}
	if e.Severity == nil && p.Severity > 0 {
		s := p.Severity
		e.Severity = &s
	}
	if e.EstimateValue == nil && p.EstimateValue > 0 {
		v := p.EstimateValue
		e.EstimateValue = &v
	}
	if e.Notes == "" && p.Description != "" {
		e.Notes = p.Description
	}
}

// runAddForm walks the intake form, seeded with any prefilled values.
func runAddForm(e *domain.ClaimEstimate, carriers []string) error {
	severityStr := ""
	if e.Severity != nil {
		severityStr = strconv.Itoa(*e.Severity)
	}
	valueStr := ""
	if e.EstimateValue != nil {
		valueStr = strconv.FormatFloat(*e.EstimateValue, 'f', -1, 64)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("File number").
				Value(&e.FileNumber).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("file number is required")
					}
					return nil
				}),
			huh.NewInput().Title("Client").Value(&e.ClientName),
			huh.NewInput().Title("Carrier").Value(&e.Carrier).Suggestions(carriers),
			huh.NewInput().Title("Claim #").Value(&e.ClaimNumber),
			huh.NewInput().Title("Policy #").Value(&e.PolicyNumber),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Peril").
				Options(perilOptions()...).
				Value(&e.Peril),
			huh.NewInput().
				Title("Severity (1-5, blank to skip)").
				Value(&severityStr).
				Validate(optionalIntInRange(1, 5)),
			huh.NewInput().
				Title("Estimate value ($, blank to skip)").
				Value(&valueStr).
				Validate(optionalMoney),
			huh.NewText().Title("Notes").Value(&e.Notes),
		),
	).WithTheme(claimtrackHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}

	if severityStr != "" {
		s, _ := strconv.Atoi(strings.TrimSpace(severityStr))
		e.Severity = &s
	}
	if valueStr != "" {
		v, _ := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
		e.EstimateValue = &v
	}
	return nil
}

func perilOptions() []huh.Option[string] {
	perils := []string{"wind", "hail", "water", "fire", "flood", "hurricane",
		"tornado", "smoke", "theft", "vandalism", "collapse", "other"}
	opts := make([]huh.Option[string], 0, len(perils)+1)
	opts = append(opts, huh.NewOption("(none)", ""))
	for _, p := range perils {
		opts = append(opts, huh.NewOption(p, p))
	}
	return opts
}

func optionalIntInRange(lo, hi int) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < lo || n > hi {
			return fmt.Errorf("must be a number between %d and %d", lo, hi)
		}
		return nil
	}
}

func optionalMoney(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("must be a non-negative dollar amount")
	}
	return nil
}

func newListCmd(a *App) *cobra.Command {
	var all bool
	var estimator string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List claim estimates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var estimates []*domain.ClaimEstimate
			var err error
			switch {
			case estimator != "":
				profile, rErr := resolveEstimator(ctx, a, estimator)
				if rErr != nil {
					return rErr
				}
				estimates, err = a.Estimates.ListByEstimator(ctx, profile.ID)
			case all:
				estimates, err = a.Estimates.List(ctx)
			default:
				estimates, err = a.Estimates.ListOpen(ctx)
			}
			if err != nil {
				return err
			}

			if len(estimates) == 0 {
				fmt.Println("No estimates found.")
				return nil
			}
			fmt.Print(formatter.EstimateTable(estimates))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include closed estimates")
	cmd.Flags().StringVar(&estimator, "estimator", "", "Only this estimator's files")

	return cmd
}

func newShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Show estimate details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEstimate(context.Background(), a, args[0])
			if err != nil {
				return err
			}
			fmt.Println(formatter.EstimateDetail(e))
			return nil
		},
	}
}

func newEditCmd(a *App) *cobra.Command {
	var client, carrier, claimNum, policyNum, peril, fileNumber, notes, received string
	var severity int
	var value, rcv, acv, deductible, netClaim float64

	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Edit estimate fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := resolveEstimate(ctx, a, args[0])
			if err != nil {
				return err
			}

			var edits app.EstimateEdits
			if cmd.Flags().Changed("file") {
				edits.FileNumber = &fileNumber
			}
			if cmd.Flags().Changed("client") {
				edits.ClientName = &client
			}
			if cmd.Flags().Changed("carrier") {
				edits.Carrier = &carrier
			}
			if cmd.Flags().Changed("claim") {
				edits.ClaimNumber = &claimNum
			}
			if cmd.Flags().Changed("policy") {
				edits.PolicyNumber = &policyNum
			}
			if cmd.Flags().Changed("peril") {
				edits.Peril = &peril
			}
			if cmd.Flags().Changed("severity") {
				edits.Severity = &severity
			}
			if cmd.Flags().Changed("value") {
				edits.EstimateValue = &value
			}
			if cmd.Flags().Changed("rcv") {
				edits.RCV = &rcv
			}
			if cmd.Flags().Changed("acv") {
				edits.ACV = &acv
			}
			if cmd.Flags().Changed("deductible") {
				edits.Deductible = &deductible
			}
			if cmd.Flags().Changed("net-claim") {
				edits.NetClaim = &netClaim
			}
			if cmd.Flags().Changed("received") {
				d, pErr := time.Parse("2006-01-02", received)
				if pErr != nil {
					return fmt.Errorf("invalid received date %q: %w", received, pErr)
				}
				edits.DateReceived = &d
			}
			if cmd.Flags().Changed("notes") {
				edits.Notes = &notes
			}

			updated, err := a.Estimates.Edit(ctx, e.ID, edits)
			if err != nil {
				return err
			}

			fmt.Printf("Updated estimate %s\n", updated.FileNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&fileNumber, "file", "", "Claim file number")
	cmd.Flags().StringVar(&client, "client", "", "Client name")
	cmd.Flags().StringVar(&carrier, "carrier", "", "Insurance carrier")
	cmd.Flags().StringVar(&claimNum, "claim", "", "Carrier claim number")
	cmd.Flags().StringVar(&policyNum, "policy", "", "Policy number")
	cmd.Flags().StringVar(&peril, "peril", "", "Peril category")
	cmd.Flags().IntVar(&severity, "severity", 0, "Severity 1-5")
	cmd.Flags().Float64Var(&value, "value", 0, "Estimate value in dollars")
	cmd.Flags().Float64Var(&rcv, "rcv", 0, "Replacement cost value")
	cmd.Flags().Float64Var(&acv, "acv", 0, "Actual cash value")
	cmd.Flags().Float64Var(&deductible, "deductible", 0, "Deductible")
	cmd.Flags().Float64Var(&netClaim, "net-claim", 0, "Net claim value")
	cmd.Flags().StringVar(&received, "received", "", "Date received (YYYY-MM-DD)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func newSettleCmd(a *App) *cobra.Command {
	var amount float64
	var date string

	cmd := &cobra.Command{
		Use:   "settle FILE",
		Short: "Record the actual settlement for an estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := resolveEstimate(ctx, a, args[0])
			if err != nil {
				return err
			}

			settledAt := time.Now()
			if date != "" {
				settledAt, err = time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid settlement date %q: %w", date, err)
				}
			}

			if err := a.Estimates.RecordSettlement(ctx, e.ID, amount, settledAt); err != nil {
				return err
			}

			fmt.Printf("Recorded %s settlement for %s\n", formatter.Money(amount), e.FileNumber)
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Settlement amount in dollars")
	cmd.Flags().StringVar(&date, "date", "", "Settlement date (YYYY-MM-DD, defaults to today)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
