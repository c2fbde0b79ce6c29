package cli

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog and image store statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := setupApp()
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Maintenance.Statistics(cmd.Context())
		if err != nil {
			return err
		}

		printStatistics(cmd.OutOrStdout(), res)

		return nil
	},
}
