// Package cli реализует командный интерфейс конвейера каталога.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/DRSN-tech/pharmacrawl/internal/app"
	config "github.com/DRSN-tech/pharmacrawl/internal/cfg"
	"github.com/DRSN-tech/pharmacrawl/pkg/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pharmacrawl",
	Short: "Pharmacy catalog crawler for dawaai.pk",
	Long: `pharmacrawl walks the catalog categories letter by letter, extracts
medicine records and ingests them into PostgreSQL together with images.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// Execute запускает корневую команду.
func Execute() error {
	// .env подхватывается до чтения конфигурации
	_ = godotenv.Load()

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(crawlCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(pingCmd)
}

// setupApp собирает приложение для выполнения команды.
func setupApp() (*app.App, error) {
	log := newLogger()

	cfg, err := config.Load(log)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	a, err := app.NewApp(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init app: %w", err)
	}

	return a, nil
}

func newLogger() logger.Logger {
	if verbose {
		return logger.NewSlogLoggerWithLevel(slog.LevelDebug)
	}

	return logger.NewSlogLogger()
}
