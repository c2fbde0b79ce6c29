package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove stored images that have no catalog record",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := setupApp()
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Maintenance.CleanupOrphanedImages(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Removed %d orphaned image(s)\n", len(res.Removed))

		for _, name := range res.Removed {
			fmt.Fprintf(out, "  %s\n", name)
		}

		return nil
	},
}
