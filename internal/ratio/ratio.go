// Package ratio computes the financial ratios and bankruptcy-model scores
// from a resolved fact set. All functions are pure; division by zero yields
// zero rather than an error so one degenerate denominator never aborts an
// analysis.
package ratio

import (
	"math"

	"github.com/rp0201/10k-distress-longevity-analysis/internal/extract"
	"github.com/rp0201/10k-distress-longevity-analysis/internal/taxonomy"
)

// Set holds every ratio the scorer consumes. Growth and ROA are percentages;
// the rest are plain ratios.
type Set struct {
	CurrentRatio     float64 `json:"current_ratio"`
	QuickRatio       float64 `json:"quick_ratio"`
	DebtToEquity     float64 `json:"debt_to_equity"`
	ReturnOnAssets   float64 `json:"roa"`
	NetMargin        float64 `json:"net_margin"`
	OperatingCFRatio float64 `json:"operating_cash_flow_ratio"`
	FreeCFToAssets   float64 `json:"free_cash_flow_to_assets"`
	RevenueGrowth    float64 `json:"revenue_growth"`
	NetIncomeGrowth  float64 `json:"net_income_growth"`
	InterestCoverage float64 `json:"interest_coverage"`
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// growthPct is year-over-year growth in percent. No prior year, or a prior
// of exactly zero, reads as flat rather than infinite.
func growthPct(current, prior float64, hasPrior bool) float64 {
	if !hasPrior || prior == 0 {
		return 0
	}
	return (current - prior) / math.Abs(prior) * 100
}

// netIncomeCurrent prefers the year-aligned value over the single-resolution
// one so ratios and growth always describe the same fiscal year.
func netIncomeCurrent(f *extract.Facts) float64 {
	if v, ok := f.Get(extract.KeyNetIncomeCurrent); ok {
		return v
	}
	return f.GetOr(taxonomy.FieldNetIncome, 0)
}

// Compute derives the full ratio set from a fact set.
func Compute(f *extract.Facts) Set {
	totalAssets := f.GetOr(taxonomy.FieldTotalAssets, 0)
	currentAssets := f.GetOr(taxonomy.FieldCurrentAssets, 0)
	currentLiabilities := f.GetOr(taxonomy.FieldCurrentLiabilities, 0)
	totalLiabilities := f.GetOr(taxonomy.FieldTotalLiabilities, 0)
	equity := f.GetOr(taxonomy.FieldStockholdersEquity, 0)
	inventory := f.GetOr(taxonomy.FieldInventory, 0)
	revenue := f.GetOr(taxonomy.FieldRevenue, 0)
	ocf := f.GetOr(taxonomy.FieldOperatingCashFlow, 0)
	capex := f.GetOr(taxonomy.FieldCapitalExpenditure, 0)
	ni := netIncomeCurrent(f)

	revCur, _ := f.Get(extract.KeyRevenueCurrent)
	revLast, hasRevLast := f.Get(extract.KeyRevenueLast)
	niCur, _ := f.Get(extract.KeyNetIncomeCurrent)
	niLast, hasNILast := f.Get(extract.KeyNetIncomeLast)

	return Set{
		CurrentRatio:     safeDiv(currentAssets, currentLiabilities),
		QuickRatio:       safeDiv(currentAssets-inventory, currentLiabilities),
		DebtToEquity:     safeDiv(totalLiabilities, equity),
		ReturnOnAssets:   safeDiv(ni, totalAssets) * 100,
		NetMargin:        safeDiv(ni, revenue),
		OperatingCFRatio: safeDiv(ocf, currentLiabilities),
		FreeCFToAssets:   safeDiv(ocf-capex, totalAssets),
		RevenueGrowth:    growthPct(revCur, revLast, hasRevLast),
		NetIncomeGrowth:  growthPct(niCur, niLast, hasNILast),
		InterestCoverage: interestCoverage(f),
	}
}

// interestCoverage uses reported operating income over interest expense when
// both exist. When operating income is missing it falls back to EBIT built
// from revenue less costs, treating missing components as zero. No interest
// expense, or a zero one, reads as zero coverage.
func interestCoverage(f *extract.Facts) float64 {
	interest, hasInterest := f.Get(taxonomy.FieldInterestExpense)
	if !hasInterest || interest == 0 {
		return 0
	}

	if opIncome, ok := f.Get(taxonomy.FieldOperatingIncome); ok {
		return opIncome / interest
	}

	ebit := f.GetOr(taxonomy.FieldRevenue, 0) -
		f.GetOr(taxonomy.FieldCostOfGoodsSold, 0) -
		f.GetOr(taxonomy.FieldOperatingExpenses, 0)
	return ebit / interest
}
