// Package metrics builds the normalized per-ticker CompanyMetrics record
// from raw vendor statement tables and the info map.
package metrics

import (
	"fmt"

	"equity_screener/pkg/core/calc"
	"equity_screener/pkg/core/statement"
	"equity_screener/pkg/models"
)

// Builder orchestrates the field resolver, scalar extractor and ratio
// calculators. It holds only configuration; Build is a pure function of
// its inputs, so identical inputs always produce identical records.
type Builder struct {
	aliases statement.AliasTable
}

// NewBuilder creates a builder using the given alias table, or the
// defaults when nil.
func NewBuilder(aliases statement.AliasTable) *Builder {
	if aliases == nil {
		aliases = statement.DefaultAliases()
	}
	return &Builder{aliases: aliases}
}

// Build derives one CompanyMetrics record from the raw company data.
// Fields whose inputs are unavailable come out unavailable; that is a
// result state, not an error. Any unexpected failure on malformed raw
// data (the vendor occasionally ships garbage) is recovered and returned
// as an error for this ticker only, so the batch proceeds.
func (b *Builder) Build(data *models.CompanyData, params calc.Params) (rec *models.CompanyMetrics, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = fmt.Errorf("building metrics for %s: %v", data.Ticker, r)
		}
	}()
	if data == nil {
		return nil, fmt.Errorf("building metrics: nil company data")
	}

	bs := data.BalanceSheet
	is := data.IncomeStatement
	cf := data.CashFlow
	info := data.Info

	// Balance sheet inputs. Debt falls back to the info map when the
	// statement row resolves to nothing or zero, then to a plain zero:
	// debt-free and debt-unknown are treated alike downstream.
	debt := statement.Latest(statement.Resolve(bs, b.aliases.Lookup(statement.ConceptTotalDebt)))
	if !debt.Valid || debt.Value == 0 {
		if v := statement.Coerce(info["totalDebt"]); v.Valid {
			debt = v
		}
	}
	if !debt.Valid {
		debt = models.Avail(0)
	}
	cash := statement.Latest(statement.Resolve(bs, b.aliases.Lookup(statement.ConceptCash)))
	equity := statement.Latest(statement.Resolve(bs, b.aliases.Lookup(statement.ConceptEquity)))

	// Income statement inputs.
	interest := statement.Latest(statement.Resolve(is, b.aliases.Lookup(statement.ConceptInterestExpense)))
	ebt := statement.Latest(statement.Resolve(is, b.aliases.Lookup(statement.ConceptEBT)))
	taxExpense := statement.Latest(statement.Resolve(is, b.aliases.Lookup(statement.ConceptIncomeTaxExpense)))
	ebit := statement.Latest(statement.Resolve(is, b.aliases.Lookup(statement.ConceptEBIT)))

	// Cost of capital.
	beta := statement.Coerce(info["beta"])
	ke := calc.CostOfEquity(params, beta)
	kd := calc.CostOfDebt(interest, debt)
	taxRate := calc.EffectiveTaxRate(params, taxExpense, ebt)

	marketCap := statement.Coerce(info["marketCap"])
	wacc := calc.WACC(marketCap, debt, ke, kd, taxRate)
	roic := calc.ROIC(ebit, taxRate, equity, debt, cash)
	spread := calc.ValueSpread(roic, wacc)

	// Valuation.
	price := statement.Coerce(info["currentPrice"])
	fcfRow := statement.Resolve(cf, b.aliases.Lookup(statement.ConceptFreeCashFlow))
	shares := statement.Coerce(info["sharesOutstanding"])
	pfcf := calc.PriceToFCF(price, statement.Latest(fcfRow), shares)

	// Growth. FCF growth falls back to operating cash flow when the
	// vendor omits a free-cash-flow row.
	fcfGrowth := calc.CAGR4(fcfRow)
	if !fcfGrowth.Valid {
		fcfGrowth = calc.CAGR4(statement.Resolve(cf, b.aliases.Lookup(statement.ConceptOperatingCashFlow)))
	}

	sector := info.Str("sector")
	if sector == "" {
		sector = "Unknown"
	}
	name := info.Str("longName", "shortName", "displayName")
	if name == "" {
		name = data.Ticker
	}

	return &models.CompanyMetrics{
		Ticker:   data.Ticker,
		Name:     name,
		Country:  info.Str("country", "countryCode"),
		Industry: info.Str("industry", "industryKey", "industryDisp"),
		Sector:   sector,

		Price:         price,
		PriceEarnings: statement.Coerce(info["trailingPE"]),
		PriceBook:     statement.Coerce(info["priceToBook"]),
		PriceFreeCash: pfcf,
		MarketCap:     marketCap,

		DividendYield: statement.Coerce(info["dividendYield"]),
		PayoutRatio:   statement.Coerce(info["payoutRatio"]),

		ReturnOnAssets:  statement.Coerce(info["returnOnAssets"]),
		ReturnOnEquity:  statement.Coerce(info["returnOnEquity"]),
		OperatingMargin: statement.Coerce(info["operatingMargins"]),
		ProfitMargin:    statement.Coerce(info["profitMargins"]),

		CurrentRatio:     statement.Coerce(info["currentRatio"]),
		QuickRatio:       statement.Coerce(info["quickRatio"]),
		DebtToEquity:     statement.Coerce(info["debtToEquity"]),
		LongTermDebtToEq: statement.Coerce(info["longTermDebtToEquity"]),

		CostOfEquity:     models.Avail(ke),
		CostOfDebt:       models.Avail(kd),
		EffectiveTaxRate: models.Avail(taxRate),
		WACC:             wacc,

		ROIC:        roic,
		ValueSpread: spread,

		RevenueGrowth:  calc.CAGR4(statement.Resolve(is, b.aliases.Lookup(statement.ConceptRevenue))),
		EarningsGrowth: calc.CAGR4(statement.Resolve(is, b.aliases.Lookup(statement.ConceptNetIncome))),
		FCFGrowth:      fcfGrowth,
	}, nil
}
