// Package screener exposes the metrics engine over HTTP.
package screener

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"equity_screener/pkg/core/calc"
	"equity_screener/pkg/core/pipeline"
	"equity_screener/pkg/core/portfolio"
	"equity_screener/pkg/core/report"
	"equity_screener/pkg/core/store"
)

// Runner executes one screener batch. Satisfied by *pipeline.Orchestrator.
type Runner interface {
	Run(ctx context.Context, tickers []string, params calc.Params) (*pipeline.Result, error)
}

// Handler handles HTTP API requests.
type Handler struct {
	runner   Runner
	repo     store.RunRepository // nil when persistence is off
	renderer report.Renderer
	defaults calc.Params
}

// NewHandler creates a new Handler. repo may be nil.
func NewHandler(runner Runner, repo store.RunRepository, defaults calc.Params, chunkSize int) *Handler {
	return &Handler{
		runner:   runner,
		repo:     repo,
		renderer: report.Renderer{ChunkSize: chunkSize},
		defaults: defaults,
	}
}

// AnalyzeRequest is the POST /api/analyze body. Omitted parameters fall
// back to the configured defaults.
type AnalyzeRequest struct {
	Tickers        []string `json:"tickers"`
	RiskFreeRate   *float64 `json:"risk_free_rate,omitempty"`
	MarketReturn   *float64 `json:"market_return,omitempty"`
	DefaultTaxRate *float64 `json:"default_tax_rate,omitempty"`
}

// HandleHealth returns the health status of the service.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, map[string]interface{}{
		"status":      "ok",
		"persistence": h.repo != nil,
	})
}

// HandleAnalyze runs the screener for the requested tickers and returns
// the sorted view with per-ticker errors.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	tickers := normalizeTickers(req.Tickers)
	if len(tickers) == 0 {
		h.jsonError(w, "no tickers supplied", http.StatusBadRequest)
		return
	}

	params := h.defaults
	if req.RiskFreeRate != nil {
		params.RiskFreeRate = *req.RiskFreeRate
	}
	if req.MarketReturn != nil {
		params.MarketReturn = *req.MarketReturn
	}
	if req.DefaultTaxRate != nil {
		params.DefaultTaxRate = *req.DefaultTaxRate
	}

	result, err := h.runner.Run(r.Context(), tickers, params)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoUsableRecords) {
			h.jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		log.Error().Err(err).Msg("Analyze request failed")
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.jsonResponse(w, result)
}

// HandleReport renders the most recent persisted run as an HTML report.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		h.jsonError(w, "persistence not configured", http.StatusServiceUnavailable)
		return
	}

	rec, err := h.repo.LoadLatest(r.Context())
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusNotFound)
		return
	}

	html, err := h.renderer.HTML(portfolio.Aggregate(rec.Records), rec.CreatedAt)
	if err != nil {
		log.Error().Err(err).Msg("Report rendering failed")
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// normalizeTickers uppercases and drops blank entries.
func normalizeTickers(tickers []string) []string {
	var out []string
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (h *Handler) jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":     message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
