package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"equity_screener/pkg/core/portfolio"
	"equity_screener/pkg/models"
)

// Renderer turns a portfolio view into Markdown. ChunkSize controls the
// table window per block; non-positive uses the portfolio default.
type Renderer struct {
	ChunkSize int
}

// Markdown renders the full report: a header, then one section per
// sector in rank order, each section's records split into fixed-size
// table windows.
func (r Renderer) Markdown(view portfolio.View, generated time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Equity Screener Report\n\n")
	fmt.Fprintf(&b, "Generated: %s  \n", generated.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "Companies: %d\n", len(view.Records))

	for _, group := range view.Sectors() {
		fmt.Fprintf(&b, "\n## %s (%d)\n", group.Sector, len(group.Records))
		for i, window := range portfolio.Chunk(group.Records, r.ChunkSize) {
			if i > 0 {
				b.WriteString("\n")
			}
			writeTable(&b, window)
		}
	}

	return b.String()
}

// writeTable emits one Markdown table for a window of records.
func writeTable(b *strings.Builder, records []models.CompanyMetrics) {
	b.WriteString("\n| Ticker | Name | Price | Mkt Cap | P/E | P/FCF | WACC | ROIC | Spread | Rev CAGR |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|---|\n")
	for _, rec := range records {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			rec.Ticker,
			escapePipes(rec.Name),
			fmtPrice(rec.Price),
			fmtMarketCap(rec.MarketCap),
			fmtRatio(rec.PriceEarnings),
			fmtRatio(rec.PriceFreeCash),
			fmtPercent(rec.WACC),
			fmtPercent(rec.ROIC),
			fmtPoints(rec.ValueSpread),
			fmtPercent(rec.RevenueGrowth),
		)
	}
}

// escapePipes keeps vendor company names from breaking table cells.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// HTML converts the Markdown report to HTML with table support.
func (r Renderer) HTML(view portfolio.View, generated time.Time) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var buf bytes.Buffer
	if err := md.Convert([]byte(r.Markdown(view, generated)), &buf); err != nil {
		return "", fmt.Errorf("converting report to HTML: %w", err)
	}
	return buf.String(), nil
}
