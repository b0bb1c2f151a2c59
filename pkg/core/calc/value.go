package calc

import (
	"equity_screener/pkg/models"
)

// =============================================================================
// VALUE CREATION
// =============================================================================

// ROIC calculates Return on Invested Capital.
//
// FORMULA: ROIC = NOPAT / invested capital
//
//	NOPAT            = EBIT * (1 - T)
//	invested capital = equity + debt - cash
//
// Unavailable when EBIT is unavailable or invested capital is zero.
func ROIC(ebit models.Metric, taxRate float64, equity, debt, cash models.Metric) models.Metric {
	if !ebit.Valid {
		return models.Unavailable
	}
	invested := equity.Or(0) + debt.Or(0) - cash.Or(0)
	if invested == 0 {
		return models.Unavailable
	}
	nopat := ebit.Value * (1 - taxRate)
	return models.Avail(nopat / invested)
}

// ValueSpread calculates the value-creation spread, the screener's core
// diagnostic: positive means the company earns more than its cost of
// capital, negative means it destroys value.
//
// FORMULA: spread = (ROIC - WACC) * 100
//
// Available iff both ROIC and WACC are available.
func ValueSpread(roic, wacc models.Metric) models.Metric {
	if !roic.Valid || !wacc.Valid {
		return models.Unavailable
	}
	return models.Avail((roic.Value - wacc.Value) * 100)
}

// PriceToFCF calculates price over free cash flow per share.
//
// FORMULA: P/FCF = price / (FCF / shares outstanding)
//
// Unavailable when free cash flow or shares are zero or missing.
func PriceToFCF(price, freeCashFlow, sharesOutstanding models.Metric) models.Metric {
	if !price.Valid || !freeCashFlow.Valid || !sharesOutstanding.Valid {
		return models.Unavailable
	}
	if freeCashFlow.Value == 0 || sharesOutstanding.Value == 0 {
		return models.Unavailable
	}
	return models.Avail(price.Value / (freeCashFlow.Value / sharesOutstanding.Value))
}
