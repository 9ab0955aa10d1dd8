// Package scorer turns a ratio set and bankruptcy-model score into the
// composite 0-100 distress score, grade, and recommendation. Lower scores
// mean healthier companies.
package scorer

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"
)

// Weights are the composite blend, expressed as fractions summing to 1.
type Weights struct {
	Ohlson           float64 `json:"ohlson" yaml:"ohlson"`
	RevenueGrowth    float64 `json:"revenue_growth" yaml:"revenue_growth"`
	NetIncomeGrowth  float64 `json:"net_income_growth" yaml:"net_income_growth"`
	OperatingCF      float64 `json:"operating_cf" yaml:"operating_cf"`
	FreeCF           float64 `json:"free_cf" yaml:"free_cf"`
	CurrentRatio     float64 `json:"current_ratio" yaml:"current_ratio"`
	QuickRatio       float64 `json:"quick_ratio" yaml:"quick_ratio"`
	DebtToEquity     float64 `json:"debt_to_equity" yaml:"debt_to_equity"`
	InterestCoverage float64 `json:"interest_coverage" yaml:"interest_coverage"`
	ROA              float64 `json:"roa" yaml:"roa"`
	NetMargin        float64 `json:"net_margin" yaml:"net_margin"`
}

// DefaultWeights returns the standard blend. Growth carries the most weight;
// the bankruptcy model is one input among several, not the verdict.
func DefaultWeights() Weights {
	return Weights{
		Ohlson:           0.10,
		RevenueGrowth:    0.15,
		NetIncomeGrowth:  0.15,
		OperatingCF:      0.12,
		FreeCF:           0.08,
		CurrentRatio:     0.08,
		QuickRatio:       0.07,
		DebtToEquity:     0.08,
		InterestCoverage: 0.07,
		ROA:              0.05,
		NetMargin:        0.05,
	}
}

// WeightsFromMap starts from the defaults and applies overrides keyed by
// component name. Unknown keys are ignored; the result still has to pass
// Validate before use.
func WeightsFromMap(overrides map[string]float64) Weights {
	w := DefaultWeights()
	for name, v := range overrides {
		switch name {
		case ComponentOhlson:
			w.Ohlson = v
		case ComponentRevenueGrowth:
			w.RevenueGrowth = v
		case ComponentNetIncomeGrowth:
			w.NetIncomeGrowth = v
		case ComponentOperatingCF:
			w.OperatingCF = v
		case ComponentFreeCF:
			w.FreeCF = v
		case ComponentCurrentRatio:
			w.CurrentRatio = v
		case ComponentQuickRatio:
			w.QuickRatio = v
		case ComponentDebtToEquity:
			w.DebtToEquity = v
		case ComponentInterestCoverage:
			w.InterestCoverage = v
		case ComponentROA:
			w.ROA = v
		case ComponentNetMargin:
			w.NetMargin = v
		}
	}
	return w
}

// Sum returns the total of all component weights.
func (w Weights) Sum() float64 {
	return w.Ohlson + w.RevenueGrowth + w.NetIncomeGrowth + w.OperatingCF +
		w.FreeCF + w.CurrentRatio + w.QuickRatio + w.DebtToEquity +
		w.InterestCoverage + w.ROA + w.NetMargin
}

// Validate checks that the weights form a proper blend.
func (w Weights) Validate() error {
	var errs []string

	named := map[string]float64{
		"ohlson":            w.Ohlson,
		"revenue_growth":    w.RevenueGrowth,
		"net_income_growth": w.NetIncomeGrowth,
		"operating_cf":      w.OperatingCF,
		"free_cf":           w.FreeCF,
		"current_ratio":     w.CurrentRatio,
		"quick_ratio":       w.QuickRatio,
		"debt_to_equity":    w.DebtToEquity,
		"interest_coverage": w.InterestCoverage,
		"roa":               w.ROA,
		"net_margin":        w.NetMargin,
	}
	for name, v := range named {
		if v < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	if sum := w.Sum(); math.Abs(sum-1) > 0.01 {
		errs = append(errs, fmt.Sprintf("weights should sum to 1, got %.3f", sum))
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: weights validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
