package ratio

import (
	"math"

	"github.com/rp0201/10k-distress-longevity-analysis/internal/extract"
	"github.com/rp0201/10k-distress-longevity-analysis/internal/taxonomy"
)

// Ohlson (1980) model coefficients, market-data-free variant. Higher scores
// mean higher bankruptcy probability.
const (
	ohlsonIntercept = -1.32
	ohlsonSize      = -0.407
	ohlsonTLTA      = 6.03
	ohlsonWCTA      = -1.43
	ohlsonCLCA      = 0.0757
	ohlsonNITA      = -2.37
	ohlsonFUTL      = -1.83
	ohlsonINTWO     = 0.285
	ohlsonOENEG     = -1.72
	ohlsonCHIN      = -0.521
)

// OhlsonOScore computes the O-Score from the fact set. Funds from operations
// is approximated as net income plus depreciation. The size term scales total
// assets to thousands before the log, per the original model's GNP deflator
// convention.
func OhlsonOScore(f *extract.Facts) float64 {
	totalAssets := f.GetOr(taxonomy.FieldTotalAssets, 0)
	totalLiabilities := f.GetOr(taxonomy.FieldTotalLiabilities, 0)
	currentAssets := f.GetOr(taxonomy.FieldCurrentAssets, 0)
	currentLiabilities := f.GetOr(taxonomy.FieldCurrentLiabilities, 0)
	depreciation := f.GetOr(taxonomy.FieldDepreciation, 0)
	ni := netIncomeCurrent(f)

	workingCapital := currentAssets - currentLiabilities
	ffo := ni + depreciation

	size := 0.0
	if totalAssets > 0 {
		size = math.Log(totalAssets / 1000)
	}

	intwo := 0.0
	niCur, hasCur := f.Get(extract.KeyNetIncomeCurrent)
	niLast, hasLast := f.Get(extract.KeyNetIncomeLast)
	if hasCur && hasLast && niCur < 0 && niLast < 0 {
		intwo = 1
	}

	oeneg := 0.0
	if totalLiabilities > totalAssets {
		oeneg = 1
	}

	chin := 0.0
	if hasCur && hasLast {
		if den := math.Abs(niCur) + math.Abs(niLast); den != 0 {
			chin = (niCur - niLast) / den
		}
	}

	return ohlsonIntercept +
		ohlsonSize*size +
		ohlsonTLTA*safeDiv(totalLiabilities, totalAssets) +
		ohlsonWCTA*safeDiv(workingCapital, totalAssets) +
		ohlsonCLCA*safeDiv(currentLiabilities, currentAssets) +
		ohlsonNITA*safeDiv(ni, totalAssets) +
		ohlsonFUTL*safeDiv(ffo, totalLiabilities) +
		ohlsonINTWO*intwo +
		ohlsonOENEG*oeneg +
		ohlsonCHIN*chin
}
