// cmd/update_minimum_stock/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vreetory/internal/app"
	appcfg "vreetory/internal/infra/config"
	"vreetory/internal/platform/di"
)

func main() {
	cmd := &cobra.Command{
		Use:   "update_minimum_stock",
		Short: "Overwrite minimum_stock of every item with a random value in [10,100]",
		Long: `Fetches every document of the items collection and sets minimum_stock
to a fresh random integer between 10 and 100 (stored as a string).
The previous value is not read; every run produces new values.

A failed update is reported and skipped. The exit status is 1 only when
the key file is missing, Firebase cannot be initialized or the items
cannot be fetched.

Set MINIMUM_STOCK_UPDATE_MODE=bulk to write through a Firestore BulkWriter.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.NewRunner(appcfg.Load(), di.OpenFirestore, cmd.OutOrStdout()).
				UpdateMinimumStock(cmd.Context())
		},
	}

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		var fe *app.FatalError
		if !errors.As(err, &fe) {
			fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		}
		os.Exit(1)
	}
}
