package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import estimators and estimates from a JSON batch file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.Import.ImportFile(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d estimate(s); %d estimator(s) created, %d reused\n",
				result.EstimatesCreated, result.EstimatorsCreated, result.EstimatorsReused)
			return nil
		},
	}
}
