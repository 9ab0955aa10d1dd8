package scorer

import "math"

// The normalizers map each raw metric onto a 0-100 distress scale, lower is
// better. Each curve is piecewise linear with band boundaries chosen per
// metric; the bands are part of the scoring contract and changing them
// changes every published score.

// normalizeOhlson maps the O-Score: below -2 is very low risk, -2 to 0.5
// low-to-moderate, above 0.5 high.
func normalizeOhlson(oScore float64) float64 {
	switch {
	case oScore < -2:
		return math.Max(0, 10+(oScore+2)*5)
	case oScore <= 0.5:
		return 10 + (oScore+2)*16
	default:
		return math.Min(100, 50+(oScore-0.5)*25)
	}
}

// normalizeGrowth maps a year-over-year growth percentage. Deliberately
// gentle on the 0-5% band so mature slow growers are not scored like
// shrinking companies.
func normalizeGrowth(pct float64) float64 {
	switch {
	case pct < -20:
		return math.Min(100, 80+math.Abs(pct+20))
	case pct < -10:
		return 65 + math.Abs(pct+10)*1.5
	case pct < 0:
		return 40 + math.Abs(pct)*2.5
	case pct <= 5:
		return 20 + (5-pct)*4
	case pct <= 15:
		return 5 + (15 - pct)
	default:
		return math.Max(0, 5-(pct-15)*0.33)
	}
}

// normalizeLiquidity scores a liquidity ratio against its ideal. Below 1 is
// risky, above 3 mildly inefficient. Strong cash generation discounts the
// sub-1 penalty by 40%: such companies can run lean working capital safely.
func normalizeLiquidity(ratio, ideal float64, hasStrongCF bool) float64 {
	switch {
	case ratio < 1:
		base := 70 + (1-ratio)*30
		if hasStrongCF {
			return base * 0.6
		}
		return base
	case ratio <= ideal:
		return 30 + (ideal-ratio)*40
	case ratio <= 3:
		return 30 + (ratio-ideal)*20
	default:
		return math.Min(60, 50+(ratio-3)*10)
	}
}

func normalizeLeverage(debtToEquity float64) float64 {
	switch {
	case debtToEquity < 0.5:
		return debtToEquity * 40
	case debtToEquity <= 1.5:
		return 20 + (debtToEquity-0.5)*20
	case debtToEquity <= 3:
		return 40 + (debtToEquity-1.5)*13.33
	case debtToEquity <= 5:
		return 60 + (debtToEquity-3)*10
	default:
		return math.Min(100, 80+(debtToEquity-5)*4)
	}
}

// normalizeInterestCoverage scores EBIT over interest expense. Negative or
// implausibly high (>50) coverage reads as no debt concern: either the
// company carries minimal debt or the EBIT rebuild hit a data-quality issue.
func normalizeInterestCoverage(ratio float64) float64 {
	switch {
	case ratio < 0 || ratio > 50:
		return 0
	case ratio < 1:
		return 80 + (1-ratio)*20
	case ratio <= 2.5:
		return 60 + (2.5-ratio)*13.33
	case ratio <= 5:
		return 40 + (5-ratio)*8
	case ratio <= 10:
		return 20 + (10-ratio)*4
	default:
		return math.Max(0, 20-(ratio-10)*2)
	}
}

// normalizeProfitability scores a return percentage (ROA, or net margin
// scaled to percent).
func normalizeProfitability(pct float64) float64 {
	switch {
	case pct < 0:
		return math.Min(100, 80+math.Abs(pct)*2)
	case pct <= 5:
		return 60 + (5-pct)*4
	case pct <= 10:
		return 40 + (10-pct)*4
	case pct <= 20:
		return 20 + (20-pct)*2
	default:
		return math.Max(0, 20-(pct-20)*0.5)
	}
}

// normalizeCashFlow scores a cash flow ratio against a per-metric adequacy
// threshold.
func normalizeCashFlow(ratio, threshold float64) float64 {
	switch {
	case ratio < 0:
		return math.Min(100, 80+math.Abs(ratio)*20)
	case ratio <= threshold:
		return 60 + (threshold-ratio)/threshold*40
	case ratio <= 1:
		return 30 + (1-ratio)/(1-threshold)*30
	default:
		return math.Max(0, 30-(ratio-1)*15)
	}
}
