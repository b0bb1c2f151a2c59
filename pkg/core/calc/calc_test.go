package calc

import (
	"math"
	"testing"

	"equity_screener/pkg/models"
)

func params() Params {
	return Params{RiskFreeRate: 0.0435, MarketReturn: 0.085, DefaultTaxRate: 0.21}
}

func TestCostOfEquityCAPM(t *testing.T) {
	p := params()

	// beta = 1.2: 0.0435 + 1.2*(0.085-0.0435)
	got := CostOfEquity(p, models.Avail(1.2))
	want := 0.0435 + 1.2*(0.085-0.0435)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Expected Ke %f, got %f", want, got)
	}

	// Missing beta defaults to 1 => Ke = market return.
	got = CostOfEquity(p, models.Unavailable)
	if math.Abs(got-0.085) > 1e-12 {
		t.Errorf("Expected Ke %f with default beta, got %f", 0.085, got)
	}
}

func TestCostOfDebtZeroDebt(t *testing.T) {
	// Zero debt => zero cost of debt, never unavailable, never a division error.
	if got := CostOfDebt(models.Avail(50), models.Avail(0)); got != 0 {
		t.Errorf("Expected 0 for zero debt, got %f", got)
	}
	if got := CostOfDebt(models.Avail(50), models.Unavailable); got != 0 {
		t.Errorf("Expected 0 for missing debt, got %f", got)
	}

	if got := CostOfDebt(models.Avail(50), models.Avail(1000)); got != 0.05 {
		t.Errorf("Expected 0.05, got %f", got)
	}

	// Missing interest with real debt behaves as zero interest.
	if got := CostOfDebt(models.Unavailable, models.Avail(1000)); got != 0 {
		t.Errorf("Expected 0 for missing interest, got %f", got)
	}
}

func TestEffectiveTaxRateDefault(t *testing.T) {
	p := params()

	// EBT = 0 => supplied default, not a computed quotient.
	if got := EffectiveTaxRate(p, models.Avail(10), models.Avail(0)); got != p.DefaultTaxRate {
		t.Errorf("Expected default tax %f, got %f", p.DefaultTaxRate, got)
	}
	if got := EffectiveTaxRate(p, models.Avail(10), models.Unavailable); got != p.DefaultTaxRate {
		t.Errorf("Expected default tax for missing EBT, got %f", got)
	}

	if got := EffectiveTaxRate(p, models.Avail(21), models.Avail(100)); got != 0.21 {
		t.Errorf("Expected 0.21, got %f", got)
	}
}

func TestWACCZeroCapitalUnavailable(t *testing.T) {
	// E = 0 and D = 0: weights undefined.
	if got := WACC(models.Avail(0), models.Avail(0), 0.08, 0.05, 0.21); got.Valid {
		t.Errorf("Expected unavailable WACC for zero capital, got %v", got)
	}
	if got := WACC(models.Unavailable, models.Unavailable, 0.08, 0.05, 0.21); got.Valid {
		t.Errorf("Expected unavailable WACC for missing capital, got %v", got)
	}

	// E = 600, D = 400, Ke = 10%, Kd = 5%, T = 25%
	got := WACC(models.Avail(600), models.Avail(400), 0.10, 0.05, 0.25)
	want := 0.6*0.10 + 0.4*0.05*0.75
	if !got.Valid || math.Abs(got.Value-want) > 1e-12 {
		t.Errorf("Expected WACC %f, got %v", want, got)
	}
}

func TestROIC(t *testing.T) {
	// EBIT unavailable => unavailable.
	if got := ROIC(models.Unavailable, 0.21, models.Avail(100), models.Avail(50), models.Avail(10)); got.Valid {
		t.Errorf("Expected unavailable ROIC without EBIT, got %v", got)
	}

	// Invested capital = 0 => unavailable.
	if got := ROIC(models.Avail(80), 0.21, models.Avail(10), models.Avail(0), models.Avail(10)); got.Valid {
		t.Errorf("Expected unavailable ROIC for zero invested capital, got %v", got)
	}

	// NOPAT = 100*(1-0.2) = 80; invested = 300+200-100 = 400 => 0.20
	got := ROIC(models.Avail(100), 0.2, models.Avail(300), models.Avail(200), models.Avail(100))
	if !got.Valid || math.Abs(got.Value-0.20) > 1e-12 {
		t.Errorf("Expected ROIC 0.20, got %v", got)
	}
}

func TestValueSpreadRequiresBoth(t *testing.T) {
	roic := models.Avail(0.15)
	wacc := models.Avail(0.08)

	got := ValueSpread(roic, wacc)
	want := (0.15 - 0.08) * 100
	if !got.Valid || math.Abs(got.Value-want) > 1e-12 {
		t.Errorf("Expected spread %f, got %v", want, got)
	}

	if ValueSpread(models.Unavailable, wacc).Valid {
		t.Error("Spread must be unavailable without ROIC")
	}
	if ValueSpread(roic, models.Unavailable).Valid {
		t.Error("Spread must be unavailable without WACC")
	}
}

func TestPriceToFCF(t *testing.T) {
	// price 100, FCF 500, shares 100 => FCF/share 5 => 20x
	got := PriceToFCF(models.Avail(100), models.Avail(500), models.Avail(100))
	if !got.Valid || math.Abs(got.Value-20) > 1e-12 {
		t.Errorf("Expected 20, got %v", got)
	}

	if PriceToFCF(models.Avail(100), models.Avail(0), models.Avail(100)).Valid {
		t.Error("Zero FCF must yield unavailable")
	}
	if PriceToFCF(models.Avail(100), models.Avail(500), models.Avail(0)).Valid {
		t.Error("Zero shares must yield unavailable")
	}
	if PriceToFCF(models.Unavailable, models.Avail(500), models.Avail(100)).Valid {
		t.Error("Missing price must yield unavailable")
	}
}

func TestCAGR4TwoPeriods(t *testing.T) {
	// Most-recent-first [100, 80]: 100/80 - 1 = 0.25
	row := models.Row{models.Avail(100), models.Avail(80)}
	got := CAGR4(row)
	if !got.Valid || math.Abs(got.Value-0.25) > 1e-12 {
		t.Errorf("Expected CAGR 0.25, got %v", got)
	}
}

func TestCAGR4FourPeriods(t *testing.T) {
	// [133.1, 121, 110, 100]: (133.1/100)^(1/3) - 1 = 0.10
	row := models.Row{models.Avail(133.1), models.Avail(121), models.Avail(110), models.Avail(100)}
	got := CAGR4(row)
	if !got.Valid || math.Abs(got.Value-0.10) > 1e-9 {
		t.Errorf("Expected CAGR 0.10, got %v", got)
	}
}

func TestCAGR4WindowStopsAtFour(t *testing.T) {
	// A fifth period must be ignored: only the 4 most recent count.
	row := models.Row{
		models.Avail(133.1), models.Avail(121), models.Avail(110),
		models.Avail(100), models.Avail(1),
	}
	got := CAGR4(row)
	if !got.Valid || math.Abs(got.Value-0.10) > 1e-9 {
		t.Errorf("Expected CAGR 0.10 over 4-period window, got %v", got)
	}
}

func TestCAGR4Unavailable(t *testing.T) {
	// Fewer than 2 usable periods.
	if CAGR4(models.Row{models.Avail(100)}).Valid {
		t.Error("Single period must yield unavailable")
	}
	if CAGR4(models.Row{models.Avail(100), models.Unavailable}).Valid {
		t.Error("One usable period must yield unavailable")
	}
	if CAGR4(models.Row{}).Valid {
		t.Error("Empty row must yield unavailable")
	}

	// Oldest value zero: no division, no infinity.
	if CAGR4(models.Row{models.Avail(100), models.Avail(0)}).Valid {
		t.Error("Zero base must yield unavailable")
	}

	// Missing periods are skipped, not counted.
	row := models.Row{models.Unavailable, models.Avail(100), models.Unavailable, models.Avail(80)}
	got := CAGR4(row)
	if !got.Valid || math.Abs(got.Value-0.25) > 1e-12 {
		t.Errorf("Expected 0.25 over the 2 usable periods, got %v", got)
	}
}
