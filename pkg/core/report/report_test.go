package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"equity_screener/pkg/core/portfolio"
	"equity_screener/pkg/models"
)

func sampleView() portfolio.View {
	return portfolio.Aggregate([]models.CompanyMetrics{
		{
			Ticker:        "AAPL",
			Name:          "Apple Inc.",
			Sector:        "Technology",
			Price:         models.Avail(100),
			MarketCap:     models.Avail(2.5e12),
			PriceEarnings: models.Avail(25),
			WACC:          models.Avail(0.075),
			ROIC:          models.Avail(0.15),
			ValueSpread:   models.Avail(7.5),
			RevenueGrowth: models.Avail(0.0772),
		},
		{
			Ticker: "NODATA",
			Name:   "No Data Corp",
			Sector: "Energy",
		},
	})
}

func TestMarkdownFormatsMetrics(t *testing.T) {
	md := Renderer{}.Markdown(sampleView(), time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))

	for _, want := range []string{
		"# Equity Screener Report",
		"## Technology (1)",
		"## Energy (1)",
		"$100.00",    // price
		"$2500.00B",  // market cap in billions
		"7.50%",      // WACC as percentage
		"15.00%",     // ROIC as percentage
		"7.50 pp",    // value spread in points
		"7.72%",      // revenue CAGR
		NotDisclosed, // every metric of NODATA
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Report missing %q:\n%s", want, md)
		}
	}

	// Sector sections follow rank order: Technology (4) before Energy (8).
	if strings.Index(md, "## Technology") > strings.Index(md, "## Energy") {
		t.Error("Sections must follow sector rank order")
	}
}

func TestMarkdownChunksLongSectors(t *testing.T) {
	records := make([]models.CompanyMetrics, 23)
	for i := range records {
		records[i] = models.CompanyMetrics{
			Ticker: fmt.Sprintf("T%02d", i),
			Name:   fmt.Sprintf("Company %02d", i),
			Sector: "Technology",
		}
	}

	md := Renderer{ChunkSize: 10}.Markdown(portfolio.Aggregate(records), time.Now())

	// 23 records at window 10 produce 3 table headers.
	if got := strings.Count(md, "| Ticker |"); got != 3 {
		t.Errorf("Expected 3 table windows, got %d", got)
	}
}

func TestMarkdownEscapesPipes(t *testing.T) {
	view := portfolio.Aggregate([]models.CompanyMetrics{
		{Ticker: "ODD", Name: "Pipe | Works", Sector: "Technology"},
	})
	md := Renderer{}.Markdown(view, time.Now())
	if !strings.Contains(md, "Pipe \\| Works") {
		t.Error("Pipes in names must be escaped in table cells")
	}
}

func TestHTMLRendersTables(t *testing.T) {
	html, err := Renderer{}.HTML(sampleView(), time.Now())
	if err != nil {
		t.Fatalf("HTML conversion failed: %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Error("Expected an HTML table in the converted report")
	}
	if !strings.Contains(html, "AAPL") {
		t.Error("Expected record content in the converted report")
	}
}
