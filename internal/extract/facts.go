// Package extract turns a raw EDGAR Company Facts document into the flat
// canonical fact set the ratio and scoring layers consume. This is the
// disambiguation core: alias fallback, duplicate-period tie-breaking, fiscal
// year alignment, and derivation rules for missing fields all live here.
package extract

import (
	"github.com/rotisserie/eris"

	"github.com/rp0201/10k-distress-longevity-analysis/internal/taxonomy"
)

// ErrIncompleteFilingData indicates the filing lacks the required current
// assets/liabilities concepts. This is the canonical rejection for banks,
// insurers, and incomplete filings, surfaced to clients as a 400.
var ErrIncompleteFilingData = eris.New(
	"required financial data not found in 10-K filing; this typically occurs with banks, insurance companies, or incomplete filings")

// Canonical keys for the paired two-year fields.
const (
	KeyRevenueCurrent   = taxonomy.FieldRevenue + "_current"
	KeyRevenueLast      = taxonomy.FieldRevenue + "_last"
	KeyNetIncomeCurrent = taxonomy.FieldNetIncome + "_current"
	KeyNetIncomeLast    = taxonomy.FieldNetIncome + "_last"
)

// FiscalYears is the resolved (current, prior) fiscal year pair that aligns
// every extracted field. A nil Current means no annual revenue data was found
// and extraction runs on the per-field best-effort path.
type FiscalYears struct {
	Current *int `json:"current_year"`
	Prior   *int `json:"prior_year"`
}

// Facts is the canonical fact set for one analysis: a flat mapping from
// canonical field names to values. Constructed once per analysis, then
// read-only.
type Facts struct {
	Years  FiscalYears
	values map[string]float64
}

func newFacts(years FiscalYears) *Facts {
	return &Facts{Years: years, values: make(map[string]float64, 32)}
}

// NewFacts builds a fact set from already-resolved values, for callers that
// load facts from somewhere other than a Company Facts document.
func NewFacts(years FiscalYears, values map[string]float64) *Facts {
	f := newFacts(years)
	for k, v := range values {
		f.values[k] = v
	}
	return f
}

// Get returns the named fact and whether it was resolved.
func (f *Facts) Get(name string) (float64, bool) {
	v, ok := f.values[name]
	return v, ok
}

// GetOr returns the named fact, or def when it was not resolved.
func (f *Facts) GetOr(name string, def float64) float64 {
	if v, ok := f.values[name]; ok {
		return v
	}
	return def
}

// Has reports whether the named fact was resolved.
func (f *Facts) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Map returns a copy of all resolved facts, for reporting.
func (f *Facts) Map() map[string]float64 {
	out := make(map[string]float64, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

func (f *Facts) set(name string, v float64) {
	f.values[name] = v
}
