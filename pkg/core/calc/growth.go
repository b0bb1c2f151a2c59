package calc

import (
	"math"

	"equity_screener/pkg/models"
)

// =============================================================================
// GROWTH
// =============================================================================

// cagrWindow is the number of most recent periods considered.
const cagrWindow = 4

// CAGR4 calculates compound annual growth over up to the 4 most recent
// non-missing periods of a row (most recent first).
//
// FORMULA: (v_newest / v_oldest)^(1/(n-1)) - 1
//
// where n is the count of periods used. Unavailable when fewer than 2
// usable periods exist or the oldest value is zero (division by zero is
// avoided, not computed as infinity).
//
// Note the sign convention divides the most recent value by the oldest,
// yielding a positive figure for growth; the inverse convention is
// equally common in vendor tools and would flip the sign.
func CAGR4(row models.Row) models.Metric {
	vals := make([]float64, 0, cagrWindow)
	for _, m := range row {
		if !m.Valid {
			continue
		}
		vals = append(vals, m.Value)
		if len(vals) == cagrWindow {
			break
		}
	}
	if len(vals) < 2 {
		return models.Unavailable
	}
	newest := vals[0]
	oldest := vals[len(vals)-1]
	if oldest == 0 {
		return models.Unavailable
	}
	n := float64(len(vals))
	// A negative base with a fractional exponent is NaN; Avail collapses
	// that to unavailable.
	return models.Avail(math.Pow(newest/oldest, 1/(n-1)) - 1)
}
