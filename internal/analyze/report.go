// Package analyze orchestrates one full distress analysis: fetch, extract,
// ratio computation, scoring, and report assembly. It owns error
// classification for the outer surfaces and all presentation rounding.
package analyze

import (
	"fmt"
	"math"

	"github.com/rp0201/10k-distress-longevity-analysis/internal/scorer"
)

// Report is the complete analysis result for one ticker, shaped for JSON
// output on both the CLI and the HTTP API.
type Report struct {
	Ticker      string  `json:"ticker"`
	CIK         string  `json:"cik"`
	CurrentYear string  `json:"current_year"`
	PriorYear   *string `json:"prior_year"`

	Score          float64 `json:"score"`
	Grade          string  `json:"grade"`
	RiskLevel      string  `json:"risk_level"`
	Interpretation string  `json:"interpretation"`

	Recommendation string `json:"recommendation"`
	AlertLevel     string `json:"alert_level"`
	HoldPosition   bool   `json:"hold_position"`
	NewInvestment  bool   `json:"new_investment"`

	Components map[string]scorer.Component `json:"components"`

	// Metrics are rounded for presentation: o-score, net margin, and
	// FCF/assets to 3 decimals, everything else to 2.
	Metrics    map[string]float64 `json:"metrics"`
	Financials map[string]float64 `json:"financials"`

	DataQuality DataQuality `json:"data_quality"`
}

// DataQuality flags analyses built on outdated facts: a filing whose report
// year runs two or more years ahead of the fiscal year the facts resolve to.
type DataQuality struct {
	IsStale    bool `json:"is_stale"`
	FilingYear *int `json:"filing_year"`
	DataYear   *int `json:"data_year"`
}

// roundTo rounds half away from zero to n decimal places.
func roundTo(v float64, n int) float64 {
	pow := math.Pow(10, float64(n))
	return math.Round(v*pow) / pow
}

// fyLabel formats a fiscal year for display. An unresolved year reads
// "FYN/A" rather than omitting the field.
func fyLabel(year *int) string {
	if year == nil {
		return "FYN/A"
	}
	return fmt.Sprintf("FY%d", *year)
}
