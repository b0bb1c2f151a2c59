package models

// CompanyMetrics is the normalized per-ticker record derived from the raw
// statement tables and info map. Every numeric field is a Metric: a finite
// value or unavailable, never a computation error. One record exists for
// every ticker whose raw fetch succeeded, even if every field is
// unavailable.
type CompanyMetrics struct {
	// Identity
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	Industry string `json:"industry"`
	Sector   string `json:"sector"`

	// Valuation
	Price          Metric `json:"price"`
	PriceEarnings  Metric `json:"price_earnings"`
	PriceBook      Metric `json:"price_book"`
	PriceFreeCash  Metric `json:"price_fcf"`
	MarketCap      Metric `json:"market_cap"`

	// Dividends
	DividendYield Metric `json:"dividend_yield"`
	PayoutRatio   Metric `json:"payout_ratio"`

	// Profitability
	ReturnOnAssets  Metric `json:"roa"`
	ReturnOnEquity  Metric `json:"roe"`
	OperatingMargin Metric `json:"operating_margin"`
	ProfitMargin    Metric `json:"profit_margin"`

	// Capital structure & liquidity
	CurrentRatio     Metric `json:"current_ratio"`
	QuickRatio       Metric `json:"quick_ratio"`
	DebtToEquity     Metric `json:"debt_equity"`
	LongTermDebtToEq Metric `json:"lt_debt_equity"`

	// Cost of capital
	CostOfEquity     Metric `json:"cost_of_equity"`
	CostOfDebt       Metric `json:"cost_of_debt"`
	EffectiveTaxRate Metric `json:"effective_tax_rate"`
	WACC             Metric `json:"wacc"`

	// Value creation
	ROIC        Metric `json:"roic"`
	ValueSpread Metric `json:"value_spread"` // (ROIC - WACC) x 100

	// Growth (4-period CAGR)
	RevenueGrowth  Metric `json:"revenue_growth"`
	EarningsGrowth Metric `json:"earnings_growth"`
	FCFGrowth      Metric `json:"fcf_growth"`
}

// FetchError records a per-ticker failure to obtain any usable raw data.
// The ticker is excluded from the portfolio view; the batch continues.
type FetchError struct {
	Ticker string `json:"ticker"`
	Reason string `json:"reason"`
}
