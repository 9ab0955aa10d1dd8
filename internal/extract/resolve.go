package extract

import (
	"sort"
	"strings"
	"time"

	"github.com/rp0201/10k-distress-longevity-analysis/internal/edgar"
)

// annualForms are the filing form types accepted as annual data sources.
func isAnnualForm(form string) bool {
	return form == "10-K" || form == "10-K/A"
}

// unitBucket selects the unit-of-measure bucket for a concept: an exact match
// on the requested unit, else the first bucket whose key contains the unit
// marker case-insensitively, else the first bucket. Bucket order is made
// deterministic by sorting unit keys; only numeric observations are kept.
func unitBucket(fact edgar.Fact, unit string) []edgar.FactValue {
	if len(fact.Units) == 0 {
		return nil
	}
	if vals, ok := fact.Units[unit]; ok {
		return numericOnly(vals)
	}

	keys := make([]string, 0, len(fact.Units))
	for k := range fact.Units {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	marker := strings.ToLower(unit)
	for _, k := range keys {
		if strings.Contains(strings.ToLower(k), marker) {
			return numericOnly(fact.Units[k])
		}
	}
	return numericOnly(fact.Units[keys[0]])
}

func numericOnly(vals []edgar.FactValue) []edgar.FactValue {
	out := vals[:0:0]
	for _, v := range vals {
		if _, ok := v.Float(); ok {
			out = append(out, v)
		}
	}
	return out
}

// annualOrAll filters observations to annual filing forms, falling back to
// the unfiltered set when no annual observation exists. The fallback is a
// data-availability relaxation only.
func annualOrAll(vals []edgar.FactValue) []edgar.FactValue {
	var annual []edgar.FactValue
	for _, v := range vals {
		if isAnnualForm(v.Form) {
			annual = append(annual, v)
		}
	}
	if len(annual) > 0 {
		return annual
	}
	return vals
}

// latestByEndFiled returns the observation with the greatest (end, filed)
// pair. End dates are ISO strings, so plain string comparison preserves
// chronological order; this tie-break is deliberate and must not be replaced
// with date parsing.
func latestByEndFiled(vals []edgar.FactValue) edgar.FactValue {
	best := vals[0]
	for _, v := range vals[1:] {
		if v.End > best.End || (v.End == best.End && v.Filed > best.Filed) {
			best = v
		}
	}
	return best
}

// latestByFYEndFiled returns the observation with the greatest
// (fiscal year, end, filed) triple.
func latestByFYEndFiled(vals []edgar.FactValue) edgar.FactValue {
	best := vals[0]
	for _, v := range vals[1:] {
		switch {
		case v.FY > best.FY:
			best = v
		case v.FY == best.FY && v.End > best.End:
			best = v
		case v.FY == best.FY && v.End == best.End && v.Filed > best.Filed:
			best = v
		}
	}
	return best
}

// byFiscalYear groups observations by fiscal-year label, keeping per year the
// observation with the lexicographically greatest end date. Observations
// without a fiscal-year label are skipped.
func byFiscalYear(vals []edgar.FactValue) map[int]edgar.FactValue {
	byYear := make(map[int]edgar.FactValue)
	for _, v := range vals {
		if v.FY == 0 {
			continue
		}
		cur, seen := byYear[v.FY]
		if !seen || v.End > cur.End {
			byYear[v.FY] = v
		}
	}
	return byYear
}

// yearsDescending returns the distinct fiscal years of a grouping, newest first.
func yearsDescending(byYear map[int]edgar.FactValue) []int {
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// looksAnnualPeriod reports whether an observation covers an annual reporting
// period: a ~350+ day span or a December 31 end date. Only consulted on the
// legacy path when no observation carries a fiscal-year label.
func looksAnnualPeriod(v edgar.FactValue) bool {
	if strings.HasSuffix(v.End, "-12-31") {
		return true
	}
	if v.Start == "" || v.End == "" {
		return false
	}
	start, err := time.Parse("2006-01-02", v.Start)
	if err != nil {
		return false
	}
	end, err := time.Parse("2006-01-02", v.End)
	if err != nil {
		return false
	}
	return end.Sub(start) >= 350*24*time.Hour
}

// ResolveFiscalYears determines the current and prior fiscal years from the
// revenue concept, the most reliably reported figure. Only annual filing
// observations count; within each fiscal year the latest-reported end date
// wins. Both years are nil when no alias yields annual revenue data.
func ResolveFiscalYears(gaap edgar.FactNS, revenueAliases []string) FiscalYears {
	for _, tag := range revenueAliases {
		fact, ok := gaap[tag]
		if !ok {
			continue
		}

		vals := unitBucket(fact, "USD")
		var annual []edgar.FactValue
		for _, v := range vals {
			if isAnnualForm(v.Form) {
				annual = append(annual, v)
			}
		}
		if len(annual) == 0 {
			continue
		}

		byYear := byFiscalYear(annual)
		if len(byYear) == 0 {
			continue
		}

		years := yearsDescending(byYear)
		fy := FiscalYears{Current: &years[0]}
		if len(years) > 1 {
			fy.Prior = &years[1]
		}
		return fy
	}
	return FiscalYears{}
}

// resolveSingle resolves one value for a concept tag. With a resolved current
// fiscal year, observations for that year win on (end, filed). Without one,
// the legacy path keeps the maximum labelled fiscal year, or for annual-only
// fields applies the annual-period heuristic, then picks the greatest
// (fiscal year, end, filed).
func resolveSingle(gaap edgar.FactNS, tag, unit string, annualOnly bool, years FiscalYears) (float64, bool) {
	fact, ok := gaap[tag]
	if !ok {
		return 0, false
	}

	vals := annualOrAll(unitBucket(fact, unit))
	if len(vals) == 0 {
		return 0, false
	}

	if years.Current != nil {
		var inYear []edgar.FactValue
		for _, v := range vals {
			if v.FY == *years.Current {
				inYear = append(inYear, v)
			}
		}
		if len(inYear) > 0 {
			return latestByEndFiled(inYear).Float()
		}
	}

	// Legacy path: no resolved year, or nothing labelled with it.
	maxFY := 0
	for _, v := range vals {
		if v.FY > maxFY {
			maxFY = v.FY
		}
	}
	if maxFY > 0 {
		var inYear []edgar.FactValue
		for _, v := range vals {
			if v.FY == maxFY {
				inYear = append(inYear, v)
			}
		}
		vals = inYear
	} else if annualOnly {
		var annual []edgar.FactValue
		for _, v := range vals {
			if looksAnnualPeriod(v) {
				annual = append(annual, v)
			}
		}
		if len(annual) > 0 {
			vals = annual
		}
	}

	return latestByFYEndFiled(vals).Float()
}

// resolvePair resolves a two-year field in a single pass: observations are
// grouped by fiscal year (latest end date wins per year), years sorted
// descending, and (newest, second-newest) returned so the pair is always
// aligned on consecutive reported years.
func resolvePair(gaap edgar.FactNS, tag, unit string) (current, prior *float64) {
	fact, ok := gaap[tag]
	if !ok {
		return nil, nil
	}

	vals := annualOrAll(unitBucket(fact, unit))
	if len(vals) == 0 {
		return nil, nil
	}

	byYear := byFiscalYear(vals)
	if len(byYear) == 0 {
		return nil, nil
	}

	years := yearsDescending(byYear)
	if v, ok := byYear[years[0]].Float(); ok {
		current = &v
	}
	if len(years) > 1 {
		if v, ok := byYear[years[1]].Float(); ok {
			prior = &v
		}
	}
	return current, prior
}
