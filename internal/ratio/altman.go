package ratio

import (
	"github.com/rp0201/10k-distress-longevity-analysis/internal/extract"
	"github.com/rp0201/10k-distress-longevity-analysis/internal/taxonomy"
)

// Altman Z'-Score coefficients for private firms, which substitute book
// equity for market capitalization. Reported alongside the O-Score for
// context; lower values mean higher distress.
const (
	altmanWCTA  = 0.717
	altmanRETA  = 0.847
	altmanEBITA = 3.107
	altmanBVETL = 0.420
	altmanSTA   = 0.998
)

// AltmanZScore computes the private-firm Z'-Score. EBIT is rebuilt from
// revenue less cost of goods sold and operating expenses; book value of
// equity is total assets less total liabilities.
func AltmanZScore(f *extract.Facts) float64 {
	totalAssets := f.GetOr(taxonomy.FieldTotalAssets, 0)
	totalLiabilities := f.GetOr(taxonomy.FieldTotalLiabilities, 0)
	currentAssets := f.GetOr(taxonomy.FieldCurrentAssets, 0)
	currentLiabilities := f.GetOr(taxonomy.FieldCurrentLiabilities, 0)
	retainedEarnings := f.GetOr(taxonomy.FieldRetainedEarnings, 0)
	revenue := f.GetOr(taxonomy.FieldRevenue, 0)

	workingCapital := currentAssets - currentLiabilities
	ebit := revenue -
		f.GetOr(taxonomy.FieldCostOfGoodsSold, 0) -
		f.GetOr(taxonomy.FieldOperatingExpenses, 0)
	bookEquity := totalAssets - totalLiabilities

	return altmanWCTA*safeDiv(workingCapital, totalAssets) +
		altmanRETA*safeDiv(retainedEarnings, totalAssets) +
		altmanEBITA*safeDiv(ebit, totalAssets) +
		altmanBVETL*safeDiv(bookEquity, totalLiabilities) +
		altmanSTA*safeDiv(revenue, totalAssets)
}
