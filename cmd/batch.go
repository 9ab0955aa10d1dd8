package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rp0201/10k-distress-longevity-analysis/internal/analyze"
)

var (
	batchFile        string
	batchFormat      string
	batchOut         string
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch [tickers...]",
	Short: "Analyze many tickers concurrently",
	Long:  "Tickers come from the arguments, from a CSV file via --file, or both. Individual failures do not abort the batch.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		tickers := normalizeTickers(args)
		if batchFile != "" {
			fromFile, err := readTickersCSV(batchFile)
			if err != nil {
				return err
			}
			tickers = append(tickers, fromFile...)
		}
		tickers = dedupe(tickers)
		if len(tickers) == 0 {
			return eris.New("batch: no tickers given")
		}

		a, err := initAnalyzer()
		if err != nil {
			return err
		}

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.MaxConcurrent
		}

		results := runBatch(ctx, a, tickers, concurrency)

		if batchFormat == "xlsx" {
			if batchOut == "" {
				return eris.New("batch: xlsx output requires --out")
			}
			return writeBatchXLSX(batchOut, results)
		}

		out := io.Writer(os.Stdout)
		if batchOut != "" {
			f, err := os.Create(batchOut)
			if err != nil {
				return eris.Wrap(err, "batch: create output file")
			}
			defer f.Close() //nolint:errcheck
			out = f
		}

		switch batchFormat {
		case "table":
			formatBatchTable(out, results)
			return nil
		case "csv":
			return writeBatchCSV(out, results)
		default:
			return eris.Errorf("batch: unknown format %q", batchFormat)
		}
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "CSV file with tickers in the first column")
	batchCmd.Flags().StringVar(&batchFormat, "format", "table", "output format: table, csv, or xlsx")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "output file (stdout when empty; required for xlsx)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "max concurrent analyses (default from config)")
	rootCmd.AddCommand(batchCmd)
}

// batchResult is one row of batch output. Failed tickers carry Err and a nil
// report.
type batchResult struct {
	Ticker string
	Report *analyze.Report
	Err    error
}

// tickerAnalyzer is satisfied by *analyze.Analyzer and by test fakes.
type tickerAnalyzer interface {
	Run(ctx context.Context, ticker string) (*analyze.Report, error)
}

// runBatch analyzes tickers concurrently, preserving input order in the
// returned slice.
func runBatch(ctx context.Context, a tickerAnalyzer, tickers []string, concurrency int) []batchResult {
	zap.L().Info("batch: starting",
		zap.Int("tickers", len(tickers)),
		zap.Int("concurrency", concurrency))

	results := make([]batchResult, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, ticker := range tickers {
		i, ticker := i, ticker
		g.Go(func() error {
			report, err := a.Run(gctx, ticker)
			if err != nil {
				zap.L().Error("batch: ticker failed",
					zap.String("ticker", ticker),
					zap.Error(err))
			}
			results[i] = batchResult{Ticker: ticker, Report: report, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	zap.L().Info("batch: complete",
		zap.Int("succeeded", len(results)-failed),
		zap.Int("failed", failed))

	return results
}

func normalizeTickers(raw []string) []string {
	var out []string
	for _, t := range raw {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func dedupe(tickers []string) []string {
	seen := make(map[string]bool, len(tickers))
	var out []string
	for _, t := range tickers {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// readTickersCSV reads tickers from the first column, skipping a header row
// when the first cell does not look like a ticker.
func readTickersCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "batch: open ticker file")
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var out []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "batch: read ticker file")
		}
		if len(record) == 0 {
			continue
		}
		cell := strings.ToUpper(strings.TrimSpace(record[0]))
		if cell == "" || cell == "TICKER" || cell == "SYMBOL" {
			continue
		}
		out = append(out, cell)
	}
	return out, nil
}

var batchColumns = []string{"ticker", "score", "grade", "risk_level", "recommendation", "current_year", "stale", "error"}

func batchRow(r batchResult) []string {
	if r.Err != nil {
		return []string{r.Ticker, "", "", "", "", "", "", r.Err.Error()}
	}
	rep := r.Report
	return []string{
		r.Ticker,
		strconv.FormatFloat(rep.Score, 'f', 2, 64),
		rep.Grade,
		rep.RiskLevel,
		rep.Recommendation,
		rep.CurrentYear,
		strconv.FormatBool(rep.DataQuality.IsStale),
		"",
	}
}

func formatBatchTable(out io.Writer, results []batchResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(batchColumns, "\t")))
	for _, r := range results {
		fmt.Fprintln(w, strings.Join(batchRow(r), "\t"))
	}
	_ = w.Flush()
}

func writeBatchCSV(out io.Writer, results []batchResult) error {
	w := csv.NewWriter(out)
	if err := w.Write(batchColumns); err != nil {
		return eris.Wrap(err, "batch: write csv header")
	}
	for _, r := range results {
		if err := w.Write(batchRow(r)); err != nil {
			return eris.Wrap(err, "batch: write csv row")
		}
	}
	w.Flush()
	return eris.Wrap(w.Error(), "batch: flush csv")
}

func writeBatchXLSX(path string, results []batchResult) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Distress")
	if err != nil {
		return eris.Wrap(err, "batch: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range batchColumns {
		header.AddCell().SetString(col)
	}

	for _, r := range results {
		row := sheet.AddRow()
		if r.Err != nil {
			row.AddCell().SetString(r.Ticker)
			for range batchColumns[1 : len(batchColumns)-1] {
				row.AddCell()
			}
			row.AddCell().SetString(r.Err.Error())
			continue
		}
		rep := r.Report
		row.AddCell().SetString(r.Ticker)
		row.AddCell().SetFloatWithFormat(rep.Score, "0.00")
		row.AddCell().SetString(rep.Grade)
		row.AddCell().SetString(rep.RiskLevel)
		row.AddCell().SetString(rep.Recommendation)
		row.AddCell().SetString(rep.CurrentYear)
		row.AddCell().SetBool(rep.DataQuality.IsStale)
		row.AddCell()
	}

	return eris.Wrap(file.Save(path), "batch: save xlsx")
}
