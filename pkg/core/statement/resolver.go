// Package statement normalizes irregular vendor statement tables:
// alias-based line-item resolution and latest-scalar extraction.
package statement

import (
	"encoding/json"

	"equity_screener/pkg/models"
)

// Resolve returns the first row of t whose line-item name matches one of
// the candidate aliases, in alias order. Vendors disagree on naming
// ("Total Debt" vs "Long Term Debt"), so every concept carries an ordered
// alias list.
//
// If no alias matches, Resolve returns a synthetic all-zero single-period
// row. This is a deliberate safe-zero policy, distinct from "value
// unavailable": ratios such as cost of debt are well-defined at zero, and
// downstream arithmetic never needs a nil check. A fully missing line
// item is not a fetch failure.
func Resolve(t models.StatementTable, aliases []string) models.Row {
	for _, name := range aliases {
		if row, ok := t.Rows[name]; ok {
			return row
		}
	}
	return models.Row{models.Avail(0)}
}

// Latest returns the most recent non-missing value of a row, or
// unavailable if every period is missing. Rows are ordered most recent
// period first, so this is the first available entry.
func Latest(row models.Row) models.Metric {
	for _, m := range row {
		if m.Valid {
			return m
		}
	}
	return models.Unavailable
}

// Coerce maps an already-scalar InfoMap value to a Metric: numeric values
// pass through, missing or non-numeric values become unavailable.
func Coerce(v any) models.Metric {
	switch n := v.(type) {
	case float64:
		return models.Avail(n)
	case float32:
		return models.Avail(float64(n))
	case int:
		return models.Avail(float64(n))
	case int64:
		return models.Avail(float64(n))
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return models.Unavailable
		}
		return models.Avail(f)
	default:
		return models.Unavailable
	}
}
