package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"equity_screener/pkg/core/calc"
	"equity_screener/pkg/core/config"
	"equity_screener/pkg/core/fetch"
	"equity_screener/pkg/core/pipeline"
	"equity_screener/pkg/core/report"
	"equity_screener/pkg/core/store"
)

var (
	analyzeOutput string
	analyzeSave   bool
	riskFreeRate  float64
	marketReturn  float64
	defaultTax    float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze TICKER...",
	Short: "Run the screener for a list of tickers",
	Long: `Run the screener for a list of tickers and print the report.

Examples:
  go run ./cmd/screener analyze AAPL MSFT XOM
  go run ./cmd/screener analyze --output json --rf 0.05 AAPL
  go run ./cmd/screener analyze --save AAPL MSFT`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "markdown", "output format: markdown or json")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "persist the run to the database")
	analyzeCmd.Flags().Float64Var(&riskFreeRate, "rf", 0, "risk-free rate override")
	analyzeCmd.Flags().Float64Var(&marketReturn, "rm", 0, "expected market return override")
	analyzeCmd.Flags().Float64Var(&defaultTax, "tax", 0, "default tax rate override")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	orch, err := buildOrchestrator(ctx, cfg, analyzeSave)
	if err != nil {
		return err
	}

	params := screenerParams(cfg)
	if cmd.Flags().Changed("rf") {
		params.RiskFreeRate = riskFreeRate
	}
	if cmd.Flags().Changed("rm") {
		params.MarketReturn = marketReturn
	}
	if cmd.Flags().Changed("tax") {
		params.DefaultTaxRate = defaultTax
	}

	result, err := orch.Run(ctx, args, params)
	if err != nil {
		// An interrupted run still returns the records built so far.
		if result == nil {
			return err
		}
		log.Warn().Err(err).Msg("Run interrupted, rendering partial results")
	}

	switch analyzeOutput {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "markdown", "md":
		renderer := report.Renderer{ChunkSize: cfg.Screener.ChunkSize}
		fmt.Println(renderer.Markdown(result.View, time.Now()))
		if len(result.Errors) > 0 {
			fmt.Println("\n## Failed tickers")
			for _, fe := range result.Errors {
				fmt.Printf("- %s: %s\n", fe.Ticker, fe.Reason)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", analyzeOutput)
	}
}

// buildOrchestrator wires the vendor client, alias table and optional
// persistence into a pipeline orchestrator.
func buildOrchestrator(ctx context.Context, cfg *config.Config, persist bool) (*pipeline.Orchestrator, error) {
	client := fetch.NewClient(fetch.Config{
		BaseURL:   cfg.Vendor.BaseURL,
		UserAgent: cfg.Vendor.UserAgent,
		Timeout:   cfg.Vendor.Timeout,
		Delay:     cfg.Vendor.Delay,
	})

	orch := pipeline.NewOrchestrator(client)
	orch.SetMaxTickers(cfg.Screener.MaxTickers)

	aliases, err := config.LoadAliases(cfg.Screener.AliasFile)
	if err != nil {
		return nil, err
	}
	orch.SetAliases(aliases)

	if persist {
		if !cfg.Database.Enabled {
			return nil, fmt.Errorf("persistence requested but DATABASE_URL is not set")
		}
		if err := store.InitDB(ctx, cfg.Database.URL); err != nil {
			return nil, err
		}
		orch.SetRepository(store.NewRunRepo())
	}

	return orch, nil
}

// screenerParams maps the screener config onto calculation parameters.
func screenerParams(cfg *config.Config) calc.Params {
	return calc.Params{
		RiskFreeRate:   cfg.Screener.RiskFreeRate,
		MarketReturn:   cfg.Screener.MarketReturn,
		DefaultTaxRate: cfg.Screener.DefaultTaxRate,
	}
}
