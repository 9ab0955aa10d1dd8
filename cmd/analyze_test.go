package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatReport(t *testing.T) {
	r := stubReport("AAPL", 25.5, "B")
	r.Financials["total_assets"] = 352755000000
	r.Financials["net_income"] = 96995000000

	var buf bytes.Buffer
	formatReport(&buf, r)
	out := buf.String()

	assert.Contains(t, out, "AAPL (CIK 0000000001)")
	assert.Contains(t, out, "25.50 / 100 (B, Low Risk)")
	assert.Contains(t, out, "Recommendation:")
	assert.Contains(t, out, "Buy")
	assert.Contains(t, out, "$352,755,000,000")
	assert.Contains(t, out, "$96,995,000,000")
	assert.NotContains(t, out, "stale")
}

func TestFormatReportStaleWarning(t *testing.T) {
	r := stubReport("OLD", 42, "C")
	r.DataQuality.IsStale = true

	var buf bytes.Buffer
	formatReport(&buf, r)
	assert.Contains(t, buf.String(), "stale")
}

func TestFormatReportNoPriorYear(t *testing.T) {
	r := stubReport("NEW", 30, "B")
	r.PriorYear = nil

	var buf bytes.Buffer
	formatReport(&buf, r)
	assert.Contains(t, buf.String(), "FYN/A")
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "yes", yesNo(true))
	assert.Equal(t, "no", yesNo(false))
}
