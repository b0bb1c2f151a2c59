package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"equity_screener/pkg/core/calc"
	"equity_screener/pkg/models"
)

// RunRecord is one persisted screener run: the parameters it ran with,
// the sorted metrics records, and the per-ticker failures.
type RunRecord struct {
	RunID     uuid.UUID               `json:"run_id"`
	CreatedAt time.Time               `json:"created_at"`
	Params    calc.Params             `json:"params"`
	Records   []models.CompanyMetrics `json:"records"`
	Errors    []models.FetchError     `json:"errors,omitempty"`
}

// RunRepository is the persistence boundary the pipeline depends on.
type RunRepository interface {
	SaveRun(ctx context.Context, rec *RunRecord) error
	LoadLatest(ctx context.Context) (*RunRecord, error)
}

// RunRepo stores runs in the screener_runs table.
//
// Schema assumption (managed by migrations):
//
//	CREATE TABLE IF NOT EXISTS screener_runs (
//	  run_id UUID PRIMARY KEY,
//	  created_at TIMESTAMPTZ NOT NULL,
//	  params JSONB NOT NULL,
//	  results JSONB NOT NULL
//	);
type RunRepo struct{}

// NewRunRepo creates a new repository instance.
func NewRunRepo() *RunRepo {
	return &RunRepo{}
}

// SaveRun persists one completed run. Runs are immutable, so a replayed
// run_id overwrites its earlier row rather than erroring.
func (r *RunRepo) SaveRun(ctx context.Context, rec *RunRecord) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	params, err := json.Marshal(rec.Params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}
	results, err := json.Marshal(struct {
		Records []models.CompanyMetrics `json:"records"`
		Errors  []models.FetchError     `json:"errors,omitempty"`
	}{rec.Records, rec.Errors})
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	query := `
		INSERT INTO screener_runs (run_id, created_at, params, results)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (run_id)
		DO UPDATE SET
			created_at = EXCLUDED.created_at,
			params = EXCLUDED.params,
			results = EXCLUDED.results;
	`

	if _, err := pool.Exec(ctx, query, rec.RunID, rec.CreatedAt, params, results); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// LoadLatest retrieves the most recent run, for report rendering without
// re-fetching the vendor.
func (r *RunRepo) LoadLatest(ctx context.Context) (*RunRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `
		SELECT run_id, created_at, params, results
		FROM screener_runs
		ORDER BY created_at DESC
		LIMIT 1
	`

	rec := &RunRecord{}
	var params, results []byte
	err := pool.QueryRow(ctx, query).Scan(&rec.RunID, &rec.CreatedAt, &params, &results)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no runs stored")
		}
		return nil, fmt.Errorf("failed to load latest run: %w", err)
	}

	if err := json.Unmarshal(params, &rec.Params); err != nil {
		return nil, fmt.Errorf("failed to unmarshal params: %w", err)
	}
	var body struct {
		Records []models.CompanyMetrics `json:"records"`
		Errors  []models.FetchError     `json:"errors,omitempty"`
	}
	if err := json.Unmarshal(results, &body); err != nil {
		return nil, fmt.Errorf("failed to unmarshal results: %w", err)
	}
	rec.Records = body.Records
	rec.Errors = body.Errors
	return rec, nil
}
