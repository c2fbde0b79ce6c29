package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DRSN-tech/pharmacrawl/internal/domain"
)

var crawlLetter string

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl catalog categories and ingest medicine records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := setupApp()
		if err != nil {
			return err
		}
		defer a.Close()

		// Ctrl+C завершает прогон частичной статистикой
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var stats *domain.RunStatistics

		if crawlLetter != "" {
			stats, err = a.Crawler.CrawlLetter(ctx, crawlLetter)
		} else {
			stats, err = a.Crawler.CrawlAll(ctx)
		}

		if stats != nil {
			printRunSummary(cmd.OutOrStdout(), stats)
		}

		if err != nil {
			return err
		}

		res, err := a.Maintenance.Statistics(ctx)
		if err != nil {
			return err
		}

		printStatistics(cmd.OutOrStdout(), res)

		return nil
	},
}

func init() {
	crawlCmd.Flags().StringVarP(&crawlLetter, "letter", "l", "", "crawl a single category letter (a-z)")
}
