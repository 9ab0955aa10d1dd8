package extract

import (
	"go.uber.org/zap"

	"github.com/rp0201/10k-distress-longevity-analysis/internal/edgar"
	"github.com/rp0201/10k-distress-longevity-analysis/internal/taxonomy"
)

// epsUnits are tried in order for per-share concepts, whose unit key varies
// across filers.
var epsUnits = []string{"USD/shares", "USD/share", "USD"}

// balanceSheetFields are resolved without the annual-form requirement:
// balance sheet concepts are instants and quarterly filings restate them.
var balanceSheetFields = []string{
	taxonomy.FieldTotalAssets,
	taxonomy.FieldCurrentAssets,
	taxonomy.FieldCash,
	taxonomy.FieldShortTermInvestments,
	taxonomy.FieldAccountsReceivable,
	taxonomy.FieldInventory,
	taxonomy.FieldTotalLiabilities,
	taxonomy.FieldCurrentLiabilities,
	taxonomy.FieldStockholdersEquity,
	taxonomy.FieldRetainedEarnings,
}

// incomeFields are flows over a reporting period and resolve annual-only.
// Earnings per share is handled separately for its unit variants; revenue
// and net income additionally get the aligned two-year treatment.
var incomeFields = []string{
	taxonomy.FieldRevenue,
	taxonomy.FieldNetIncome,
	taxonomy.FieldCostOfGoodsSold,
	taxonomy.FieldGrossProfit,
	taxonomy.FieldOperatingIncome,
	taxonomy.FieldOperatingExpenses,
	taxonomy.FieldInterestExpense,
}

var cashflowFields = []string{
	taxonomy.FieldOperatingCashFlow,
	taxonomy.FieldInvestingCashFlow,
	taxonomy.FieldFinancingCashFlow,
	taxonomy.FieldDepreciation,
	taxonomy.FieldCapitalExpenditure,
}

// Extractor resolves the canonical fact set from a Company Facts document
// using an alias table. Safe for concurrent use; the table is read-only.
type Extractor struct {
	table *taxonomy.Table
}

// NewExtractor creates an extractor over the given alias table.
func NewExtractor(table *taxonomy.Table) *Extractor {
	return &Extractor{table: table}
}

// Extract resolves every canonical field from the document. Returns
// ErrIncompleteFilingData when current assets or current liabilities cannot
// be resolved, since no liquidity analysis is possible without them.
func (e *Extractor) Extract(doc *edgar.CompanyFacts) (*Facts, error) {
	gaap := doc.GAAP()
	if gaap == nil {
		gaap = edgar.FactNS{}
	}

	years := ResolveFiscalYears(gaap, e.table.RevenueAliases())
	facts := newFacts(years)

	for _, field := range balanceSheetFields {
		e.resolveField(gaap, facts, taxonomy.BalanceSheet, field, "USD", false)
	}
	e.deriveTotalLiabilities(gaap, facts)

	for _, field := range incomeFields {
		e.resolveField(gaap, facts, taxonomy.IncomeStatement, field, "USD", true)
	}
	e.resolveEPS(gaap, facts)
	e.resolveTwoYear(gaap, facts, taxonomy.FieldNetIncome, KeyNetIncomeCurrent, KeyNetIncomeLast)
	e.resolveTwoYear(gaap, facts, taxonomy.FieldRevenue, KeyRevenueCurrent, KeyRevenueLast)

	for _, field := range cashflowFields {
		e.resolveField(gaap, facts, taxonomy.CashFlow, field, "USD", true)
	}

	// Genuinely-absent-means-zero fields: many filers carry no inventory,
	// and capital expenditure is legitimately zero for asset-light companies.
	if !facts.Has(taxonomy.FieldInventory) {
		facts.set(taxonomy.FieldInventory, 0)
	}
	if !facts.Has(taxonomy.FieldCapitalExpenditure) {
		facts.set(taxonomy.FieldCapitalExpenditure, 0)
	}

	if !facts.Has(taxonomy.FieldCurrentAssets) || !facts.Has(taxonomy.FieldCurrentLiabilities) {
		return nil, ErrIncompleteFilingData
	}
	return facts, nil
}

// resolveField walks the alias list for a field; the first alias that yields
// a value wins and later aliases are never consulted.
func (e *Extractor) resolveField(gaap edgar.FactNS, facts *Facts, cat taxonomy.Category, field, unit string, annualOnly bool) {
	for _, tag := range e.table.Aliases(cat, field) {
		if v, ok := resolveSingle(gaap, tag, unit, annualOnly, facts.Years); ok {
			facts.set(field, v)
			return
		}
	}
}

// deriveTotalLiabilities backfills total_liabilities as current plus
// noncurrent when the Liabilities concept itself is never reported.
func (e *Extractor) deriveTotalLiabilities(gaap edgar.FactNS, facts *Facts) {
	if facts.Has(taxonomy.FieldTotalLiabilities) {
		return
	}
	current, ok := facts.Get(taxonomy.FieldCurrentLiabilities)
	if !ok {
		return
	}
	for _, tag := range e.table.NoncurrentLiabilities {
		if noncurrent, ok := resolveSingle(gaap, tag, "USD", false, facts.Years); ok {
			facts.set(taxonomy.FieldTotalLiabilities, current+noncurrent)
			zap.L().Debug("extract: derived total liabilities",
				zap.String("noncurrent_tag", tag))
			return
		}
	}
}

// resolveEPS resolves earnings per share, trying each unit variant across
// the full alias list before moving to the next variant.
func (e *Extractor) resolveEPS(gaap edgar.FactNS, facts *Facts) {
	for _, unit := range epsUnits {
		for _, tag := range e.table.Aliases(taxonomy.IncomeStatement, taxonomy.FieldEarningsPerShare) {
			if v, ok := resolveSingle(gaap, tag, unit, true, facts.Years); ok {
				facts.set(taxonomy.FieldEarningsPerShare, v)
				return
			}
		}
	}
}

// resolveTwoYear resolves the aligned (current, prior) pair for a growth
// field. Both values come from the same alias so year-over-year comparisons
// never mix concepts; the plain field is backfilled from the pair when the
// single-year resolution found nothing.
func (e *Extractor) resolveTwoYear(gaap edgar.FactNS, facts *Facts, field, keyCurrent, keyLast string) {
	for _, tag := range e.table.Aliases(taxonomy.IncomeStatement, field) {
		current, prior := resolvePair(gaap, tag, "USD")
		if current == nil {
			continue
		}
		facts.set(keyCurrent, *current)
		if prior != nil {
			facts.set(keyLast, *prior)
		}
		if !facts.Has(field) {
			facts.set(field, *current)
		}
		return
	}
}
