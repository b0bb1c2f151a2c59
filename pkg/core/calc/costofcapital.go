// Package calc provides deterministic financial calculations for the
// screener. Every calculator is a pure function over already-extracted
// scalars with an explicit missing-data policy: indeterminate inputs
// yield an unavailable Metric, never an error, so one sparse ticker
// cannot block the rest of the batch.
package calc

import (
	"equity_screener/pkg/models"
)

// =============================================================================
// MARKET ASSUMPTIONS
// =============================================================================

// Params holds the market assumptions shared by the cost-of-capital
// calculators. Supplied explicitly by the caller; no process-wide state.
type Params struct {
	RiskFreeRate   float64 `json:"risk_free_rate"`   // r_f: valid range [0, 0.20], e.g. 0.0435
	MarketReturn   float64 `json:"market_return"`    // r_m: valid range [0, 0.30], e.g. 0.085
	DefaultTaxRate float64 `json:"default_tax_rate"` // T fallback when EBT is zero: [0, 0.50], e.g. 0.21
}

// DefaultParams are the assumptions used when the caller supplies none.
func DefaultParams() Params {
	return Params{
		RiskFreeRate:   0.0435,
		MarketReturn:   0.085,
		DefaultTaxRate: 0.21,
	}
}

// =============================================================================
// COST OF CAPITAL
// =============================================================================

// CostOfEquity calculates required return on equity using CAPM.
//
// FORMULA: r_e = r_f + beta * (r_m - r_f)
//
// Beta defaults to 1 (market beta) when the vendor supplies none, so the
// result is always computable.
func CostOfEquity(p Params, beta models.Metric) float64 {
	return p.RiskFreeRate + beta.Or(1)*(p.MarketReturn-p.RiskFreeRate)
}

// CostOfDebt calculates the pre-tax cost of debt.
//
// FORMULA: r_d = interest expense / total debt
//
// Zero or missing debt yields zero, not unavailable: a debt-free company
// has a well-defined zero cost of debt, and propagating undefined here
// would needlessly poison WACC.
func CostOfDebt(interestExpense, totalDebt models.Metric) float64 {
	if !totalDebt.Valid || totalDebt.Value == 0 {
		return 0
	}
	return interestExpense.Or(0) / totalDebt.Value
}

// EffectiveTaxRate calculates the effective corporate tax rate.
//
// FORMULA: T = income tax expense / earnings before tax
//
// When EBT is zero or missing the quotient is undefined; the caller's
// default rate is used instead of a computed value.
func EffectiveTaxRate(p Params, taxExpense, ebt models.Metric) float64 {
	if !ebt.Valid || ebt.Value == 0 {
		return p.DefaultTaxRate
	}
	return taxExpense.Or(0) / ebt.Value
}

// WACC calculates the Weighted Average Cost of Capital, weighted by
// market value of equity and total debt.
//
// FORMULA: WACC = (E/(E+D)) * r_e + (D/(E+D)) * r_d * (1 - T)
//
// Unavailable when total capital E+D is zero: the weights are undefined.
func WACC(marketCap, totalDebt models.Metric, costOfEquity, costOfDebt, taxRate float64) models.Metric {
	e := marketCap.Or(0)
	d := totalDebt.Or(0)
	total := e + d
	if total == 0 {
		return models.Unavailable
	}
	return models.Avail((e/total)*costOfEquity + (d/total)*costOfDebt*(1-taxRate))
}
