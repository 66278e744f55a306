package cli

import (
	"github.com/spf13/cobra"

	"github.com/fdalton/claimtrack/internal/service"
)

// App holds references to the service interfaces used by CLI commands.
type App struct {
	Estimates  service.EstimateService
	Lifecycle  service.LifecycleService
	Estimators service.EstimatorService
	Reports    service.ReportService
	Import     service.ImportService

	// DefaultEstimator is the configured user id used when a command needs an
	// estimator and none is given.
	DefaultEstimator string

	// Interactive enables huh forms and the dashboard. False when stdout is
	// not a terminal.
	Interactive bool
}

// NewRootCmd creates the top-level "claimtrack" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "claimtrack",
		Short:         "Claim estimate tracker and weekly productivity scorecard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newEditCmd(app),
		newMoveCmd(app),
		newBlockCmd(app),
		newUnblockCmd(app),
		newLogCmd(app),
		newEventsCmd(app),
		newSettleCmd(app),
		newScorecardCmd(app),
		newTeamCmd(app),
		newEstimatorCmd(app),
		newImportCmd(app),
		newDashboardCmd(app),
	)

	return root
}
