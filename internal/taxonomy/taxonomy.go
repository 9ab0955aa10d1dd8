// Package taxonomy holds the tag resolution table: the mapping from each
// canonical financial-statement field to the ordered list of us-gaap concept
// aliases that may report it. The table is static configuration, loaded once
// from the embedded YAML and never mutated.
package taxonomy

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed alt_tags.yaml
var altTagsYAML []byte

// Category names a statement section of the table.
type Category string

const (
	BalanceSheet    Category = "balance_sheet_tags"
	IncomeStatement Category = "income_statement_tags"
	CashFlow        Category = "cashflow_tags"
)

// Canonical field names used across extraction and scoring.
const (
	FieldTotalAssets          = "total_assets"
	FieldCurrentAssets        = "current_assets"
	FieldCash                 = "cash"
	FieldShortTermInvestments = "short_term_investments"
	FieldAccountsReceivable   = "accounts_receivable"
	FieldInventory            = "inventory"
	FieldTotalLiabilities     = "total_liabilities"
	FieldCurrentLiabilities   = "current_liabilities"
	FieldStockholdersEquity   = "stockholders_equity"
	FieldRetainedEarnings     = "retained_earnings"
	FieldRevenue              = "revenue"
	FieldNetIncome            = "net_income"
	FieldCostOfGoodsSold      = "cost_of_goods_sold"
	FieldGrossProfit          = "gross_profit"
	FieldOperatingIncome      = "operating_income"
	FieldOperatingExpenses    = "operating_expenses"
	FieldInterestExpense      = "interest_expense"
	FieldEarningsPerShare     = "earnings_per_share"
	FieldOperatingCashFlow    = "operating_cash_flow"
	FieldInvestingCashFlow    = "investing_cash_flow"
	FieldFinancingCashFlow    = "financing_cash_flow"
	FieldDepreciation         = "depreciation"
	FieldCapitalExpenditure   = "capital_expenditure"
)

// Table maps canonical field names to ordered us-gaap alias lists per category.
type Table struct {
	BalanceSheet          map[string][]string `yaml:"balance_sheet_tags"`
	IncomeStatement       map[string][]string `yaml:"income_statement_tags"`
	CashFlow              map[string][]string `yaml:"cashflow_tags"`
	NoncurrentLiabilities []string            `yaml:"noncurrent_liability_tags"`
}

// Load parses the embedded alias table.
func Load() (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(altTagsYAML, &t); err != nil {
		return nil, eris.Wrap(err, "taxonomy: parse alt tags")
	}
	if len(t.BalanceSheet) == 0 || len(t.IncomeStatement) == 0 || len(t.CashFlow) == 0 {
		return nil, eris.New("taxonomy: alt tags table is missing a statement category")
	}
	return &t, nil
}

// Aliases returns the ordered alias list for a field within a category.
func (t *Table) Aliases(cat Category, field string) []string {
	switch cat {
	case BalanceSheet:
		return t.BalanceSheet[field]
	case IncomeStatement:
		return t.IncomeStatement[field]
	case CashFlow:
		return t.CashFlow[field]
	default:
		return nil
	}
}

// RevenueAliases returns the alias list that anchors fiscal-year resolution.
func (t *Table) RevenueAliases() []string {
	if tags := t.IncomeStatement[FieldRevenue]; len(tags) > 0 {
		return tags
	}
	return []string{"Revenues"}
}
