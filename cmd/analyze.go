package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rp0201/10k-distress-longevity-analysis/internal/analyze"
)

var (
	analyzeJSON bool
	analyzeSave bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <ticker>",
	Short: "Analyze one company's latest 10-K",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := initAnalyzer()
		if err != nil {
			return err
		}

		report, err := a.Run(ctx, args[0])
		if err != nil {
			return eris.Wrapf(err, "analyze %s", args[0])
		}

		if analyzeSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			run, err := st.SaveRun(ctx, report)
			if err != nil {
				return eris.Wrap(err, "save run")
			}
			zap.L().Info("run saved", zap.String("run_id", run.ID))
		}

		if analyzeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		formatReport(os.Stdout, report)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full report as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "persist the run to the configured store")
	rootCmd.AddCommand(analyzeCmd)
}

// financialsOrder fixes the display order for the dollar figures; anything
// extracted beyond these follows alphabetically.
var financialsOrder = []string{
	"total_assets",
	"total_liabilities",
	"stockholders_equity",
	"revenue",
	"net_income",
	"operating_cash_flow",
}

// formatReport writes the human-readable summary. Dollar amounts get
// thousands separators via the English locale printer.
func formatReport(out io.Writer, r *analyze.Report) {
	p := message.NewPrinter(language.AmericanEnglish)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	prior := "FYN/A"
	if r.PriorYear != nil {
		prior = *r.PriorYear
	}

	fmt.Fprintf(w, "%s (CIK %s)\t%s vs %s\n", r.Ticker, r.CIK, r.CurrentYear, prior)
	fmt.Fprintf(w, "Score:\t%.2f / 100 (%s, %s)\n", r.Score, r.Grade, r.RiskLevel)
	fmt.Fprintf(w, "Assessment:\t%s\n", r.Interpretation)
	fmt.Fprintf(w, "Recommendation:\t%s (alert: %s)\n", r.Recommendation, r.AlertLevel)
	fmt.Fprintf(w, "Hold position:\t%s\n", yesNo(r.HoldPosition))
	fmt.Fprintf(w, "New investment:\t%s\n", yesNo(r.NewInvestment))
	if r.DataQuality.IsStale {
		fmt.Fprintf(w, "Warning:\tfacts are stale relative to the latest filing\n")
	}

	fmt.Fprintln(w, "\nMetrics")
	for _, name := range sortedKeys(r.Metrics) {
		fmt.Fprintf(w, "  %s:\t%.3f\n", name, r.Metrics[name])
	}

	fmt.Fprintln(w, "\nFinancials")
	printed := make(map[string]bool)
	for _, name := range financialsOrder {
		if v, ok := r.Financials[name]; ok {
			p.Fprintf(w, "  %s:\t$%.0f\n", name, v)
			printed[name] = true
		}
	}
	for _, name := range sortedKeys(r.Financials) {
		if !printed[name] {
			p.Fprintf(w, "  %s:\t$%.0f\n", name, r.Financials[name])
		}
	}

	_ = w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
