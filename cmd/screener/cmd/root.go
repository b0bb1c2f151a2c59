// Package cmd - screener CLI commands.
package cmd

import (
	"github.com/spf13/cobra"

	"equity_screener/pkg/core/config"
	"equity_screener/pkg/core/logger"
)

var (
	cfg     *config.Config
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Financial health screener for listed companies",
	Long: `Financial health screener for listed companies.

Fetches statement data from the vendor API, derives cost-of-capital,
value-creation and growth metrics per ticker, and presents a
sector-ranked view.

Commands:
    analyze    run the screener for a list of tickers
    serve      start the HTTP API server
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
}

// initConfig loads configuration and initializes the logger.
func initConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	return logger.Init(logger.Config{
		Level:       level,
		Format:      cfg.Logging.Format,
		FileEnabled: cfg.Logging.FileEnabled,
		FilePath:    cfg.Logging.FilePath,
	})
}
