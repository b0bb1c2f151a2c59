package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"equity_screener/pkg/api/screener"
	"equity_screener/pkg/core/config"
	"equity_screener/pkg/core/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server.

Endpoints:
  POST /api/analyze   run the screener for a list of tickers
  GET  /api/report    render the latest persisted run as HTML
  GET  /api/health    health check`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	persist := cfg.Database.Enabled
	orch, err := buildOrchestrator(ctx, cfg, persist)
	if err != nil {
		return err
	}
	if persist {
		defer store.Close()
	}

	var repo store.RunRepository
	if persist {
		repo = store.NewRunRepo()
	}

	handler := screener.NewHandler(orch, repo, screenerParams(cfg), cfg.Screener.ChunkSize)
	requestTimeout, writeTimeout := serverTimeouts(cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      screener.NewRouter(handler, requestTimeout),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Server.Port).Bool("persistence", persist).
		Msg("API server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info().Msg("API server stopped")
	return nil
}

// serverTimeouts derives the per-request and connection write timeouts.
// Analyze requests fetch each ticker from the vendor under throttle, so
// both scale with the batch cap rather than using a flat HTTP default.
func serverTimeouts(cfg *config.Config) (request, write time.Duration) {
	request = cfg.Vendor.Delay*time.Duration(cfg.Screener.MaxTickers) + cfg.Server.ReadTimeout
	return request, request + cfg.Server.WriteTimeout
}
