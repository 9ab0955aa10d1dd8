package scorer

import (
	"github.com/rp0201/10k-distress-longevity-analysis/internal/ratio"
)

// strongCFThreshold is the operating cash flow ratio above which a company
// counts as a strong cash generator, softening the liquidity penalties.
const strongCFThreshold = 0.4

// Cash flow adequacy thresholds and liquidity ideals per metric.
const (
	ocfThreshold      = 0.15
	fcfThreshold      = 0.05
	currentRatioIdeal = 2.0
	quickRatioIdeal   = 1.5
)

// Component names, used as keys in Result.Components.
const (
	ComponentOhlson           = "ohlson"
	ComponentRevenueGrowth    = "revenue_growth"
	ComponentNetIncomeGrowth  = "net_income_growth"
	ComponentOperatingCF      = "operating_cf"
	ComponentFreeCF           = "free_cf"
	ComponentCurrentRatio     = "current_ratio"
	ComponentQuickRatio       = "quick_ratio"
	ComponentDebtToEquity     = "debt_to_equity"
	ComponentInterestCoverage = "interest_coverage"
	ComponentROA              = "roa"
	ComponentNetMargin        = "net_margin"
)

// Component is one scored input: its normalized 0-100 score, its weight in
// the blend, and the raw metric it was derived from.
type Component struct {
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
	Raw    float64 `json:"raw"`
}

// Result is the composite outcome for one company-year.
type Result struct {
	Score          float64              `json:"score"`
	Grade          string               `json:"grade"`
	RiskLevel      string               `json:"risk_level"`
	Interpretation string               `json:"interpretation"`
	Components     map[string]Component `json:"components"`
}

// Scorer blends normalized components under a validated weight set.
type Scorer struct {
	weights Weights
}

// New creates a scorer over a validated weight set.
func New(w Weights) (*Scorer, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{weights: w}, nil
}

// Score computes the composite distress score from the ratio set and the
// Ohlson O-Score. The raw composite stays unrounded here; presentation
// rounding happens at the report boundary.
func (s *Scorer) Score(r ratio.Set, oScore float64) Result {
	hasStrongCF := r.OperatingCFRatio > strongCFThreshold

	components := map[string]Component{
		ComponentOhlson: {
			Score: normalizeOhlson(oScore), Weight: s.weights.Ohlson, Raw: oScore,
		},
		ComponentRevenueGrowth: {
			Score: normalizeGrowth(r.RevenueGrowth), Weight: s.weights.RevenueGrowth, Raw: r.RevenueGrowth,
		},
		ComponentNetIncomeGrowth: {
			Score: normalizeGrowth(r.NetIncomeGrowth), Weight: s.weights.NetIncomeGrowth, Raw: r.NetIncomeGrowth,
		},
		ComponentOperatingCF: {
			Score: normalizeCashFlow(r.OperatingCFRatio, ocfThreshold), Weight: s.weights.OperatingCF, Raw: r.OperatingCFRatio,
		},
		ComponentFreeCF: {
			Score: normalizeCashFlow(r.FreeCFToAssets, fcfThreshold), Weight: s.weights.FreeCF, Raw: r.FreeCFToAssets,
		},
		ComponentCurrentRatio: {
			Score: normalizeLiquidity(r.CurrentRatio, currentRatioIdeal, hasStrongCF), Weight: s.weights.CurrentRatio, Raw: r.CurrentRatio,
		},
		ComponentQuickRatio: {
			Score: normalizeLiquidity(r.QuickRatio, quickRatioIdeal, hasStrongCF), Weight: s.weights.QuickRatio, Raw: r.QuickRatio,
		},
		ComponentDebtToEquity: {
			Score: normalizeLeverage(r.DebtToEquity), Weight: s.weights.DebtToEquity, Raw: r.DebtToEquity,
		},
		ComponentInterestCoverage: {
			Score: normalizeInterestCoverage(r.InterestCoverage), Weight: s.weights.InterestCoverage, Raw: r.InterestCoverage,
		},
		ComponentROA: {
			Score: normalizeProfitability(r.ReturnOnAssets), Weight: s.weights.ROA, Raw: r.ReturnOnAssets,
		},
		// Net margin runs through the profitability curve in percent terms
		// but reports the raw fraction.
		ComponentNetMargin: {
			Score: normalizeProfitability(r.NetMargin * 100), Weight: s.weights.NetMargin, Raw: r.NetMargin,
		},
	}

	var composite float64
	for _, c := range components {
		composite += c.Score * c.Weight
	}

	grade, riskLevel, interpretation := Interpret(composite)
	return Result{
		Score:          composite,
		Grade:          grade,
		RiskLevel:      riskLevel,
		Interpretation: interpretation,
		Components:     components,
	}
}
