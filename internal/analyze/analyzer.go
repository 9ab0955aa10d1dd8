package analyze

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rp0201/10k-distress-longevity-analysis/internal/edgar"
	"github.com/rp0201/10k-distress-longevity-analysis/internal/extract"
	"github.com/rp0201/10k-distress-longevity-analysis/internal/ratio"
	"github.com/rp0201/10k-distress-longevity-analysis/internal/scorer"
	"github.com/rp0201/10k-distress-longevity-analysis/internal/taxonomy"
)

// staleYears is the filing-year/data-year gap at which facts count as stale.
const staleYears = 2

// CompanyData is the EDGAR surface the analyzer needs; satisfied by
// *edgar.Client and by test fakes.
type CompanyData interface {
	ResolveTicker(ctx context.Context, ticker string) (string, error)
	CompanyFacts(ctx context.Context, cik string) (*edgar.CompanyFacts, error)
	LatestAnnualFiling(ctx context.Context, cik string) (*edgar.FilingInfo, error)
}

// Analyzer runs the full pipeline for one ticker.
type Analyzer struct {
	edgar     CompanyData
	extractor *extract.Extractor
	scorer    *scorer.Scorer
}

// New assembles an analyzer from its collaborators.
func New(data CompanyData, ex *extract.Extractor, sc *scorer.Scorer) *Analyzer {
	return &Analyzer{edgar: data, extractor: ex, scorer: sc}
}

// Run analyzes one ticker end to end. Errors are classifiable via Classify;
// there are no partial reports.
func (a *Analyzer) Run(ctx context.Context, ticker string) (*Report, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	cik, err := a.edgar.ResolveTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}

	doc, err := a.edgar.CompanyFacts(ctx, cik)
	if err != nil {
		return nil, err
	}

	facts, err := a.extractor.Extract(doc)
	if err != nil {
		return nil, err
	}

	filing, err := a.edgar.LatestAnnualFiling(ctx, cik)
	if err != nil {
		return nil, err
	}

	ratios := ratio.Compute(facts)
	oScore := ratio.OhlsonOScore(facts)
	zScore := ratio.AltmanZScore(facts)

	result := a.scorer.Score(ratios, oScore)
	rec := scorer.Recommend(result.Score)

	report := &Report{
		Ticker:      ticker,
		CIK:         cik,
		CurrentYear: fyLabel(facts.Years.Current),

		Score:          roundTo(result.Score, 2),
		Grade:          result.Grade,
		RiskLevel:      result.RiskLevel,
		Interpretation: result.Interpretation,

		Recommendation: rec.Rating,
		AlertLevel:     rec.AlertLevel,
		HoldPosition:   rec.HoldPosition(),
		NewInvestment:  rec.ConsiderNewInvestment(),

		Components: result.Components,
		Metrics:    buildMetrics(ratios, oScore, zScore),
		Financials: buildFinancials(facts),

		DataQuality: dataQuality(filing, facts.Years),
	}
	if facts.Years.Prior != nil {
		label := fyLabel(facts.Years.Prior)
		report.PriorYear = &label
	}

	zap.L().Info("analyze: completed",
		zap.String("ticker", ticker),
		zap.String("cik", cik),
		zap.Float64("score", report.Score),
		zap.String("grade", report.Grade))

	return report, nil
}

func buildMetrics(r ratio.Set, oScore, zScore float64) map[string]float64 {
	return map[string]float64{
		"ohlson_o_score":     roundTo(oScore, 3),
		"altman_z_score":     roundTo(zScore, 2),
		"current_ratio":      roundTo(r.CurrentRatio, 2),
		"quick_ratio":        roundTo(r.QuickRatio, 2),
		"debt_to_equity":     roundTo(r.DebtToEquity, 2),
		"interest_coverage":  roundTo(r.InterestCoverage, 2),
		"roa":                roundTo(r.ReturnOnAssets, 2),
		"net_profit_margin":  roundTo(r.NetMargin, 3),
		"operating_cf_ratio": roundTo(r.OperatingCFRatio, 2),
		"free_cf_to_assets":  roundTo(r.FreeCFToAssets, 3),
		"revenue_growth":     roundTo(r.RevenueGrowth, 2),
		"net_income_growth":  roundTo(r.NetIncomeGrowth, 2),
	}
}

// financialsExtra are reported when extracted but never feed the score.
var financialsExtra = []string{
	taxonomy.FieldCash,
	taxonomy.FieldShortTermInvestments,
	taxonomy.FieldAccountsReceivable,
	taxonomy.FieldInventory,
	taxonomy.FieldRetainedEarnings,
	taxonomy.FieldStockholdersEquity,
	taxonomy.FieldGrossProfit,
	taxonomy.FieldInvestingCashFlow,
	taxonomy.FieldFinancingCashFlow,
	taxonomy.FieldCapitalExpenditure,
	taxonomy.FieldEarningsPerShare,
}

func buildFinancials(f *extract.Facts) map[string]float64 {
	out := map[string]float64{
		"total_assets":        f.GetOr(taxonomy.FieldTotalAssets, 0),
		"total_liabilities":   f.GetOr(taxonomy.FieldTotalLiabilities, 0),
		"revenue":             f.GetOr(extract.KeyRevenueCurrent, 0),
		"net_income":          f.GetOr(extract.KeyNetIncomeCurrent, 0),
		"operating_cash_flow": f.GetOr(taxonomy.FieldOperatingCashFlow, 0),
	}
	for _, field := range financialsExtra {
		if v, ok := f.Get(field); ok {
			out[field] = v
		}
	}
	return out
}

func dataQuality(filing *edgar.FilingInfo, years extract.FiscalYears) DataQuality {
	dq := DataQuality{DataYear: years.Current}

	if filing == nil || len(filing.ReportDate) < 4 || years.Current == nil {
		return dq
	}
	filingYear, err := strconv.Atoi(filing.ReportDate[:4])
	if err != nil {
		return dq
	}
	dq.FilingYear = &filingYear
	dq.IsStale = filingYear-*years.Current >= staleYears
	return dq
}
