// Package report renders a screener run as a Markdown document, grouped
// by sector and paginated into display windows, plus an HTML conversion
// for the web surface.
package report

import (
	"github.com/shopspring/decimal"

	"equity_screener/pkg/models"
)

// NotDisclosed is rendered for unavailable metrics.
const NotDisclosed = "N/D"

// fmtRatio renders a plain ratio with two decimals.
func fmtRatio(m models.Metric) string {
	if !m.Valid {
		return NotDisclosed
	}
	return decimal.NewFromFloat(m.Value).StringFixed(2)
}

// fmtPercent renders a fraction as a percentage with two decimals.
func fmtPercent(m models.Metric) string {
	if !m.Valid {
		return NotDisclosed
	}
	return decimal.NewFromFloat(m.Value * 100).StringFixed(2) + "%"
}

// fmtPoints renders an already-scaled percentage-point value.
func fmtPoints(m models.Metric) string {
	if !m.Valid {
		return NotDisclosed
	}
	return decimal.NewFromFloat(m.Value).StringFixed(2) + " pp"
}

// fmtPrice renders a currency amount.
func fmtPrice(m models.Metric) string {
	if !m.Valid {
		return NotDisclosed
	}
	return "$" + decimal.NewFromFloat(m.Value).StringFixed(2)
}

// fmtMarketCap renders market capitalization in billions.
func fmtMarketCap(m models.Metric) string {
	if !m.Valid {
		return NotDisclosed
	}
	return "$" + decimal.NewFromFloat(m.Value/1e9).StringFixed(2) + "B"
}
