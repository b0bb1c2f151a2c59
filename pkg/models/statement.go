package models

// Row is a single statement line item across reporting periods,
// most recent period first. Missing periods are unavailable Metrics.
type Row []Metric

// StatementTable is one vendor financial statement: an ordered sequence
// of period labels (columns, descending in recency) and a map from
// line-item name to its per-period values. Immutable once fetched.
type StatementTable struct {
	Periods []string       `json:"periods"`
	Rows    map[string]Row `json:"rows"`
}

// Empty reports whether the table carries no line items at all.
// An empty table is valid input ("data present but empty"), distinct
// from a fetch failure.
func (t StatementTable) Empty() bool {
	return len(t.Rows) == 0
}

// InfoMap is a flat map of point-in-time company attributes supplied by
// the vendor summary endpoint (price, market cap, beta, precomputed
// ratios). Values are numbers, strings, or absent; it serves as a
// fallback source when a StatementTable lookup fails.
type InfoMap map[string]any

// Str returns the first non-empty string value among the given keys.
func (m InfoMap) Str(keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// CompanyData bundles the raw per-ticker inputs produced by the fetch
// collaborator and consumed exactly once by the metrics builder.
type CompanyData struct {
	Ticker          string         `json:"ticker"`
	BalanceSheet    StatementTable `json:"balance_sheet"`
	IncomeStatement StatementTable `json:"income_statement"`
	CashFlow        StatementTable `json:"cash_flow"`
	Info            InfoMap        `json:"info"`
}
