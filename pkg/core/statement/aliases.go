package statement

// Concept keys for the alias table. Builders look line items up by
// concept, never by raw vendor name.
const (
	ConceptTotalDebt         = "total_debt"
	ConceptCash              = "cash"
	ConceptEquity            = "equity"
	ConceptInterestExpense   = "interest_expense"
	ConceptEBT               = "ebt"
	ConceptIncomeTaxExpense  = "income_tax_expense"
	ConceptEBIT              = "ebit"
	ConceptFreeCashFlow      = "free_cash_flow"
	ConceptOperatingCashFlow = "operating_cash_flow"
	ConceptRevenue           = "revenue"
	ConceptNetIncome         = "net_income"
)

// AliasTable maps a concept to its ordered list of vendor line-item
// names. Configured once at startup; probe order is priority order.
type AliasTable map[string][]string

// DefaultAliases returns the built-in alias table covering the vendor
// naming variants seen in the field.
func DefaultAliases() AliasTable {
	return AliasTable{
		ConceptTotalDebt: {"Total Debt", "Long Term Debt"},
		ConceptCash: {
			"Cash And Cash Equivalents",
			"Cash And Cash Equivalents At Carrying Value",
			"Cash Cash Equivalents And Short Term Investments",
		},
		ConceptEquity:           {"Common Stock Equity", "Total Stockholder Equity"},
		ConceptInterestExpense:  {"Interest Expense"},
		ConceptEBT:              {"Ebt", "EBT", "Pretax Income"},
		ConceptIncomeTaxExpense: {"Income Tax Expense", "Tax Provision"},
		ConceptEBIT: {
			"EBIT",
			"Operating Income",
			"Earnings Before Interest and Taxes",
		},
		ConceptFreeCashFlow:      {"Free Cash Flow"},
		ConceptOperatingCashFlow: {"Operating Cash Flow", "Cash Flow From Continuing Operating Activities"},
		ConceptRevenue:           {"Total Revenue", "Revenues"},
		ConceptNetIncome:         {"Net Income", "Net Income Common Stockholders"},
	}
}

// Lookup returns the alias list for a concept. Unknown concepts resolve
// to the concept name itself so a misconfigured table degrades to the
// safe-zero row instead of panicking.
func (t AliasTable) Lookup(concept string) []string {
	if aliases, ok := t[concept]; ok && len(aliases) > 0 {
		return aliases
	}
	return []string{concept}
}

// Merge overlays per-concept alias overrides (from the YAML config file)
// onto the table. Overrides replace, not append: the configured order is
// the probe order.
func (t AliasTable) Merge(overrides map[string][]string) {
	for concept, aliases := range overrides {
		if len(aliases) > 0 {
			t[concept] = aliases
		}
	}
}
