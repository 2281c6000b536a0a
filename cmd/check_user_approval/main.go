// cmd/check_user_approval/main.go
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
		Use:   "check_user_approval",
		Short: "Print approval / role status of every user for manual auditing",
		Long: `Reads every document of the users collection and prints email, role,
is_approved (with its stored type), admin_request and whether the user
can access the cashier feature. Only a boolean true grants access.

Nothing is written.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.NewRunner(appcfg.Load(), di.OpenFirestore, cmd.OutOrStdout()).
				CheckUserApproval(cmd.Context())
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
