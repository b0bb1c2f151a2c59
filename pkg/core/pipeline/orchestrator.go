// Package pipeline manages the end-to-end screener flow:
// Fetch -> Build -> Aggregate -> (optional) Storage.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"equity_screener/pkg/core/calc"
	"equity_screener/pkg/core/fetch"
	"equity_screener/pkg/core/metrics"
	"equity_screener/pkg/core/portfolio"
	"equity_screener/pkg/core/statement"
	"equity_screener/pkg/core/store"
	"equity_screener/pkg/models"
)

// ErrNoUsableRecords signals that every requested ticker failed to yield a
// metrics record, so there is nothing to aggregate.
var ErrNoUsableRecords = errors.New("no usable records")

// DefaultMaxTickers caps one run's batch size.
const DefaultMaxTickers = 50

// Result is one completed screener run.
type Result struct {
	RunID    uuid.UUID           `json:"run_id"`
	Params   calc.Params         `json:"params"`
	View     portfolio.View      `json:"view"`
	Errors   []models.FetchError `json:"errors,omitempty"`
	Started  time.Time           `json:"started"`
	Finished time.Time           `json:"finished"`
}

// Orchestrator runs the screener batch. The fetcher is the only required
// collaborator; the repository is optional and a nil repo skips
// persistence.
type Orchestrator struct {
	fetcher    fetch.Fetcher
	builder    *metrics.Builder
	repo       store.RunRepository
	maxTickers int
}

// NewOrchestrator creates an orchestrator with the given fetcher and the
// default alias table and batch cap.
func NewOrchestrator(fetcher fetch.Fetcher) *Orchestrator {
	return &Orchestrator{
		fetcher:    fetcher,
		builder:    metrics.NewBuilder(nil),
		maxTickers: DefaultMaxTickers,
	}
}

// SetRepository injects a run repository for persistence.
func (o *Orchestrator) SetRepository(repo store.RunRepository) {
	o.repo = repo
}

// SetAliases replaces the builder's field alias table.
func (o *Orchestrator) SetAliases(aliases statement.AliasTable) {
	o.builder = metrics.NewBuilder(aliases)
}

// SetMaxTickers changes the batch cap. Non-positive values keep the
// default.
func (o *Orchestrator) SetMaxTickers(n int) {
	if n > 0 {
		o.maxTickers = n
	}
}

// Run executes the screener for the given tickers. Per-ticker failures
// are collected, not fatal: a ticker that cannot be fetched or built is
// recorded in Result.Errors and excluded from the view. Cancellation
// stops the batch between tickers; the records built so far are still
// aggregated and returned alongside the context error, so a non-nil
// error may come with a non-nil partial Result. Run fails outright only
// when no ticker yields a record.
func (o *Orchestrator) Run(ctx context.Context, tickers []string, params calc.Params) (*Result, error) {
	started := time.Now()

	if len(tickers) > o.maxTickers {
		log.Warn().Int("requested", len(tickers)).Int("cap", o.maxTickers).
			Msg("Ticker list truncated to batch cap")
		tickers = tickers[:o.maxTickers]
	}
	log.Info().Int("tickers", len(tickers)).Msg("Starting screener run")

	var records []models.CompanyMetrics
	var fetchErrors []models.FetchError
	var cancelErr error
	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			cancelErr = err
			log.Warn().Err(err).Int("built", len(records)).
				Msg("Run cancelled, aggregating partial results")
			break
		}

		data, err := o.fetcher.Fetch(ctx, ticker)
		if err != nil {
			log.Warn().Str("ticker", ticker).Err(err).Msg("Fetch failed, skipping ticker")
			fetchErrors = append(fetchErrors, models.FetchError{Ticker: ticker, Reason: err.Error()})
			continue
		}

		rec, err := o.builder.Build(data, params)
		if err != nil {
			log.Warn().Str("ticker", ticker).Err(err).Msg("Build failed, skipping ticker")
			fetchErrors = append(fetchErrors, models.FetchError{Ticker: ticker, Reason: err.Error()})
			continue
		}
		records = append(records, *rec)
	}

	if len(records) == 0 {
		if cancelErr != nil {
			return nil, cancelErr
		}
		return nil, fmt.Errorf("%w: all %d tickers failed", ErrNoUsableRecords, len(tickers))
	}

	result := &Result{
		RunID:    uuid.New(),
		Params:   params,
		View:     portfolio.Aggregate(records),
		Errors:   fetchErrors,
		Started:  started,
		Finished: time.Now(),
	}

	// A cancelled context cannot carry DB calls, so persistence is
	// skipped for partial results.
	if o.repo != nil && cancelErr == nil {
		rec := &store.RunRecord{
			RunID:     result.RunID,
			CreatedAt: result.Finished,
			Params:    params,
			Records:   result.View.Records,
			Errors:    fetchErrors,
		}
		if err := o.repo.SaveRun(ctx, rec); err != nil {
			// Persistence is best-effort: the computed view is still
			// returned to the caller.
			log.Error().Str("run_id", result.RunID.String()).Err(err).
				Msg("Failed to persist run")
		}
	}

	log.Info().Str("run_id", result.RunID.String()).
		Int("records", len(records)).Int("errors", len(fetchErrors)).
		Dur("elapsed", result.Finished.Sub(started)).
		Msg("Screener run complete")
	return result, cancelErr
}
