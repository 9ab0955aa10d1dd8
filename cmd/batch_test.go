package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/rp0201/10k-distress-longevity-analysis/internal/analyze"
)

// fakeAnalyzer answers from a fixed map and records call concurrency.
type fakeAnalyzer struct {
	mu      sync.Mutex
	reports map[string]*analyze.Report
	errs    map[string]error
	calls   []string
}

func (f *fakeAnalyzer) Run(_ context.Context, ticker string) (*analyze.Report, error) {
	f.mu.Lock()
	f.calls = append(f.calls, ticker)
	f.mu.Unlock()

	if err, ok := f.errs[ticker]; ok {
		return nil, err
	}
	if r, ok := f.reports[ticker]; ok {
		return r, nil
	}
	return nil, eris.Errorf("no fixture for %s", ticker)
}

func stubReport(ticker string, score float64, grade string) *analyze.Report {
	return &analyze.Report{
		Ticker:         ticker,
		CIK:            "0000000001",
		CurrentYear:    "FY2023",
		Score:          score,
		Grade:          grade,
		RiskLevel:      "Low Risk",
		Interpretation: "Generally healthy, minor concerns",
		Recommendation: "Buy",
		AlertLevel:     "Quarterly",
		HoldPosition:   true,
		NewInvestment:  true,
		Metrics:        map[string]float64{"current_ratio": 1.5},
		Financials:     map[string]float64{"total_assets": 1000000, "revenue": 500000},
	}
}

func TestRunBatchPreservesOrder(t *testing.T) {
	fa := &fakeAnalyzer{reports: map[string]*analyze.Report{
		"AAPL": stubReport("AAPL", 25, "B"),
		"MSFT": stubReport("MSFT", 18, "A"),
		"GME":  stubReport("GME", 72, "E"),
	}}

	results := runBatch(context.Background(), fa, []string{"AAPL", "MSFT", "GME"}, 2)
	require.Len(t, results, 3)
	assert.Equal(t, "AAPL", results[0].Ticker)
	assert.Equal(t, "MSFT", results[1].Ticker)
	assert.Equal(t, "GME", results[2].Ticker)
	assert.Equal(t, 18.0, results[1].Report.Score)
}

func TestRunBatchContinuesOnFailure(t *testing.T) {
	fa := &fakeAnalyzer{
		reports: map[string]*analyze.Report{"AAPL": stubReport("AAPL", 25, "B")},
		errs:    map[string]error{"NOPE": eris.New("ticker not found")},
	}

	results := runBatch(context.Background(), fa, []string{"NOPE", "AAPL"}, 1)
	require.Len(t, results, 2)
	require.Error(t, results[0].Err)
	assert.Nil(t, results[0].Report)
	require.NoError(t, results[1].Err)
	assert.Equal(t, "B", results[1].Report.Grade)
}

func TestNormalizeAndDedupe(t *testing.T) {
	got := dedupe(normalizeTickers([]string{" aapl ", "MSFT", "aapl", "", "msft"}))
	assert.Equal(t, []string{"AAPL", "MSFT"}, got)
}

func TestReadTickersCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickers.csv")
	require.NoError(t, os.WriteFile(path, []byte("ticker,name\naapl,Apple Inc\nMSFT,Microsoft\n\n"), 0o644))

	got, err := readTickersCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, got)
}

func TestReadTickersCSVMissingFile(t *testing.T) {
	_, err := readTickersCSV(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

func TestWriteBatchCSV(t *testing.T) {
	results := []batchResult{
		{Ticker: "AAPL", Report: stubReport("AAPL", 25.5, "B")},
		{Ticker: "NOPE", Err: eris.New("ticker not found")},
	}

	var buf bytes.Buffer
	require.NoError(t, writeBatchCSV(&buf, results))

	out := buf.String()
	assert.Contains(t, out, "ticker,score,grade")
	assert.Contains(t, out, "AAPL,25.50,B,Low Risk,Buy,FY2023,false,")
	assert.Contains(t, out, "NOPE,,,,,,,ticker not found")
}

func TestFormatBatchTable(t *testing.T) {
	var buf bytes.Buffer
	formatBatchTable(&buf, []batchResult{{Ticker: "AAPL", Report: stubReport("AAPL", 25.5, "B")}})

	out := buf.String()
	assert.Contains(t, out, "TICKER")
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "25.50")
}

func TestWriteBatchXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.xlsx")
	results := []batchResult{
		{Ticker: "AAPL", Report: stubReport("AAPL", 25.5, "B")},
		{Ticker: "NOPE", Err: eris.New("ticker not found")},
	}

	require.NoError(t, writeBatchXLSX(path, results))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	require.GreaterOrEqual(t, len(sheet.Rows), 3)
	assert.Equal(t, "ticker", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "AAPL", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "B", sheet.Rows[1].Cells[2].String())
	assert.Equal(t, "NOPE", sheet.Rows[2].Cells[0].String())
}
