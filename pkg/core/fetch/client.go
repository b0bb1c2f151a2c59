package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"equity_screener/pkg/models"
)

// ============================================================================
// VENDOR CLIENT
// ============================================================================

const (
	// DefaultBaseURL is the vendor quote API root.
	DefaultBaseURL = "https://query1.finance.example.com"

	// DefaultUserAgent identifies the screener to the vendor. Some vendor
	// edges reject requests without a browser-like UA.
	DefaultUserAgent = "Mozilla/5.0 (compatible; equity-screener/1.0)"

	// DefaultRequestDelay spaces consecutive requests so a batch run stays
	// under the vendor's informal rate ceiling.
	DefaultRequestDelay = 1 * time.Second

	// DefaultTimeout bounds a single vendor request.
	DefaultTimeout = 30 * time.Second
)

// statement endpoint type parameters.
const (
	stmtBalanceSheet    = "balance-sheet"
	stmtIncomeStatement = "income-statement"
	stmtCashFlow        = "cash-flow"
)

// Config controls the vendor client. Zero values fall back to defaults;
// a negative Delay disables throttling.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Delay     time.Duration
}

// Client fetches statement tables and the info map from the vendor HTTP
// API. It implements Fetcher and is safe for concurrent use; the
// inter-request delay is enforced across all goroutines sharing the
// client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	delay      time.Duration

	mu      sync.Mutex // guards lastReq
	lastReq time.Time
}

// NewClient creates a vendor client from cfg.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Delay == 0 {
		cfg.Delay = DefaultRequestDelay
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		delay:      cfg.Delay,
	}
}

// statementPayload is the vendor's wire shape for one financial statement.
// Row cells are null for missing periods.
type statementPayload struct {
	Periods []string              `json:"periods"`
	Rows    map[string][]*float64 `json:"rows"`
}

// Fetch retrieves all raw inputs for one ticker. A transport or HTTP
// failure on the summary endpoint fails the ticker; a statement the
// vendor simply doesn't have (404) comes back as an empty table, which
// downstream treats as "present but empty", not as a fetch failure.
func (c *Client) Fetch(ctx context.Context, ticker string) (*models.CompanyData, error) {
	info, err := c.fetchInfo(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("quote summary for %s: %w", ticker, err)
	}

	bs, err := c.fetchStatement(ctx, ticker, stmtBalanceSheet)
	if err != nil {
		return nil, fmt.Errorf("balance sheet for %s: %w", ticker, err)
	}
	is, err := c.fetchStatement(ctx, ticker, stmtIncomeStatement)
	if err != nil {
		return nil, fmt.Errorf("income statement for %s: %w", ticker, err)
	}
	cf, err := c.fetchStatement(ctx, ticker, stmtCashFlow)
	if err != nil {
		return nil, fmt.Errorf("cash flow for %s: %w", ticker, err)
	}

	// Profile scrape is best-effort enrichment for tickers whose summary
	// omits classification fields. Never fails the fetch.
	if _, ok := info["sector"]; !ok {
		c.enrichFromProfile(ctx, ticker, info)
	}

	return &models.CompanyData{
		Ticker:          ticker,
		BalanceSheet:    bs,
		IncomeStatement: is,
		CashFlow:        cf,
		Info:            info,
	}, nil
}

// fetchInfo retrieves the flat key/value summary for a ticker.
func (c *Client) fetchInfo(ctx context.Context, ticker string) (models.InfoMap, error) {
	body, status, err := c.get(ctx, fmt.Sprintf("%s/v7/finance/summary/%s", c.baseURL, url.PathEscape(ticker)))
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("vendor returned status %d", status)
	}

	info := models.InfoMap{}
	if err := decodeLenient(body, &info); err != nil {
		return nil, fmt.Errorf("decoding summary: %w", err)
	}
	return info, nil
}

// fetchStatement retrieves one statement table and converts it to the
// internal tri-state row representation.
func (c *Client) fetchStatement(ctx context.Context, ticker, stmtType string) (models.StatementTable, error) {
	endpoint := fmt.Sprintf("%s/v1/finance/statements/%s?type=%s",
		c.baseURL, url.PathEscape(ticker), url.QueryEscape(stmtType))

	body, status, err := c.get(ctx, endpoint)
	if err != nil {
		return models.StatementTable{}, err
	}
	if status == http.StatusNotFound {
		log.Debug().Str("ticker", ticker).Str("statement", stmtType).
			Msg("Vendor has no statement, treating as empty")
		return models.StatementTable{}, nil
	}
	if status != http.StatusOK {
		return models.StatementTable{}, fmt.Errorf("vendor returned status %d", status)
	}

	var payload statementPayload
	if err := decodeLenient(body, &payload); err != nil {
		return models.StatementTable{}, fmt.Errorf("decoding %s: %w", stmtType, err)
	}

	table := models.StatementTable{Periods: payload.Periods}
	if len(payload.Rows) > 0 {
		table.Rows = make(map[string]models.Row, len(payload.Rows))
		for name, cells := range payload.Rows {
			row := make(models.Row, len(cells))
			for i, cell := range cells {
				if cell == nil {
					row[i] = models.Unavailable
				} else {
					row[i] = models.Avail(*cell)
				}
			}
			table.Rows[name] = row
		}
	}
	return table, nil
}

// get issues one throttled GET and returns the body and status code.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, int, error) {
	if err := c.throttle(ctx); err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

// throttle enforces the inter-request delay, honoring ctx cancellation.
// Concurrent callers are serialized so the delay holds across goroutines.
func (c *Client) throttle(ctx context.Context) error {
	if c.delay <= 0 {
		return ctx.Err()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	wait := c.delay - time.Since(c.lastReq)
	if wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.lastReq = time.Now()
	return nil
}
