package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check database connectivity",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := setupApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Ping(); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "database is reachable")

		return nil
	},
}
