package ratio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rp0201/10k-distress-longevity-analysis/internal/extract"
	"github.com/rp0201/10k-distress-longevity-analysis/internal/taxonomy"
)

// healthyFiler is a solid, profitable company used across the tests.
func healthyFiler() *extract.Facts {
	return extract.NewFacts(extract.FiscalYears{}, map[string]float64{
		taxonomy.FieldTotalAssets:        2_000_000,
		taxonomy.FieldCurrentAssets:      600_000,
		taxonomy.FieldInventory:          100_000,
		taxonomy.FieldTotalLiabilities:   900_000,
		taxonomy.FieldCurrentLiabilities: 300_000,
		taxonomy.FieldStockholdersEquity: 1_100_000,
		taxonomy.FieldRetainedEarnings:   500_000,
		taxonomy.FieldRevenue:            1_000_000,
		taxonomy.FieldCostOfGoodsSold:    600_000,
		taxonomy.FieldOperatingExpenses:  200_000,
		taxonomy.FieldOperatingIncome:    200_000,
		taxonomy.FieldInterestExpense:    20_000,
		taxonomy.FieldNetIncome:          120_000,
		extract.KeyNetIncomeCurrent:      120_000,
		extract.KeyNetIncomeLast:         90_000,
		extract.KeyRevenueCurrent:        1_000_000,
		extract.KeyRevenueLast:           800_000,
		taxonomy.FieldOperatingCashFlow:  150_000,
		taxonomy.FieldCapitalExpenditure: 50_000,
		taxonomy.FieldDepreciation:       40_000,
	})
}

func TestComputeRatios(t *testing.T) {
	r := Compute(healthyFiler())

	assert.InDelta(t, 2.0, r.CurrentRatio, 1e-9)
	assert.InDelta(t, 600_000.0/300_000-100_000.0/300_000, r.QuickRatio, 1e-9)
	assert.InDelta(t, 900_000.0/1_100_000, r.DebtToEquity, 1e-9)
	assert.InDelta(t, 6.0, r.ReturnOnAssets, 1e-9)   // 120k / 2M * 100
	assert.InDelta(t, 0.12, r.NetMargin, 1e-9)       // 120k / 1M
	assert.InDelta(t, 0.5, r.OperatingCFRatio, 1e-9) // 150k / 300k
	assert.InDelta(t, 0.05, r.FreeCFToAssets, 1e-9)  // (150k-50k) / 2M
	assert.InDelta(t, 25.0, r.RevenueGrowth, 1e-9)
	assert.InDelta(t, 100.0/3.0, r.NetIncomeGrowth, 1e-6)
	assert.InDelta(t, 10.0, r.InterestCoverage, 1e-9) // 200k / 20k
}

func TestGrowthEdgeCases(t *testing.T) {
	t.Run("no prior year reads flat", func(t *testing.T) {
		f := extract.NewFacts(extract.FiscalYears{}, map[string]float64{
			extract.KeyRevenueCurrent: 1000,
		})
		assert.Zero(t, Compute(f).RevenueGrowth)
	})

	t.Run("zero prior reads flat", func(t *testing.T) {
		f := extract.NewFacts(extract.FiscalYears{}, map[string]float64{
			extract.KeyRevenueCurrent: 1000,
			extract.KeyRevenueLast:    0,
		})
		assert.Zero(t, Compute(f).RevenueGrowth)
	})

	t.Run("negative prior uses absolute base", func(t *testing.T) {
		f := extract.NewFacts(extract.FiscalYears{}, map[string]float64{
			extract.KeyNetIncomeCurrent: 50,
			extract.KeyNetIncomeLast:    -100,
		})
		// (50 - (-100)) / |-100| * 100 = 150
		assert.InDelta(t, 150.0, Compute(f).NetIncomeGrowth, 1e-9)
	})
}

func TestInterestCoverage(t *testing.T) {
	t.Run("zero interest expense", func(t *testing.T) {
		f := extract.NewFacts(extract.FiscalYears{}, map[string]float64{
			taxonomy.FieldOperatingIncome: 100,
			taxonomy.FieldInterestExpense: 0,
		})
		assert.Zero(t, Compute(f).InterestCoverage)
	})

	t.Run("missing interest expense", func(t *testing.T) {
		f := extract.NewFacts(extract.FiscalYears{}, map[string]float64{
			taxonomy.FieldOperatingIncome: 100,
		})
		assert.Zero(t, Compute(f).InterestCoverage)
	})

	t.Run("ebit fallback without operating income", func(t *testing.T) {
		f := extract.NewFacts(extract.FiscalYears{}, map[string]float64{
			taxonomy.FieldRevenue:         1000,
			taxonomy.FieldCostOfGoodsSold: 600,
			taxonomy.FieldInterestExpense: 40,
		})
		// EBIT = 1000 - 600 - 0 = 400; 400/40 = 10
		assert.InDelta(t, 10.0, Compute(f).InterestCoverage, 1e-9)
	})
}

func TestSafeDivNeverPanicsOrInfs(t *testing.T) {
	// An all-zero fact set produces an all-zero ratio set, not NaN/Inf.
	f := extract.NewFacts(extract.FiscalYears{}, map[string]float64{})
	r := Compute(f)

	for name, v := range map[string]float64{
		"current_ratio":    r.CurrentRatio,
		"quick_ratio":      r.QuickRatio,
		"debt_to_equity":   r.DebtToEquity,
		"roa":              r.ReturnOnAssets,
		"net_margin":       r.NetMargin,
		"ocf_ratio":        r.OperatingCFRatio,
		"fcf_to_assets":    r.FreeCFToAssets,
		"revenue_growth":   r.RevenueGrowth,
		"net_income_grow":  r.NetIncomeGrowth,
		"interest_coverge": r.InterestCoverage,
	} {
		assert.Zerof(t, v, "ratio %s", name)
		assert.Falsef(t, math.IsNaN(v) || math.IsInf(v, 0), "ratio %s", name)
	}
}

func TestOhlsonOScore(t *testing.T) {
	t.Run("healthy filer scores low", func(t *testing.T) {
		score := OhlsonOScore(healthyFiler())
		assert.Less(t, score, 0.0)
	})

	t.Run("distressed filer scores high", func(t *testing.T) {
		f := extract.NewFacts(extract.FiscalYears{}, map[string]float64{
			taxonomy.FieldTotalAssets:        1_000_000,
			taxonomy.FieldTotalLiabilities:   1_400_000, // insolvent on the books
			taxonomy.FieldCurrentAssets:      100_000,
			taxonomy.FieldCurrentLiabilities: 500_000,
			taxonomy.FieldNetIncome:          -200_000,
			extract.KeyNetIncomeCurrent:      -200_000,
			extract.KeyNetIncomeLast:         -150_000,
		})
		score := OhlsonOScore(f)
		assert.Greater(t, score, 2.0)
	})

	t.Run("exact value", func(t *testing.T) {
		f := healthyFiler()
		got := OhlsonOScore(f)

		size := math.Log(2_000_000.0 / 1000)
		ffo := 120_000.0 + 40_000.0
		wc := 600_000.0 - 300_000.0
		chin := (120_000.0 - 90_000.0) / (120_000.0 + 90_000.0)
		want := -1.32 - 0.407*size +
			6.03*(900_000.0/2_000_000) -
			1.43*(wc/2_000_000) +
			0.0757*(300_000.0/600_000) -
			2.37*(120_000.0/2_000_000) -
			1.83*(ffo/900_000) -
			0.521*chin
		assert.InDelta(t, want, got, 1e-9)
	})

	t.Run("zero assets is finite", func(t *testing.T) {
		f := extract.NewFacts(extract.FiscalYears{}, map[string]float64{})
		got := OhlsonOScore(f)
		assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))
	})

	t.Run("two loss years adds INTWO", func(t *testing.T) {
		base := map[string]float64{
			taxonomy.FieldTotalAssets:        1_000_000,
			taxonomy.FieldTotalLiabilities:   400_000,
			taxonomy.FieldCurrentAssets:      300_000,
			taxonomy.FieldCurrentLiabilities: 200_000,
		}
		oneLoss := map[string]float64{}
		twoLoss := map[string]float64{}
		for k, v := range base {
			oneLoss[k] = v
			twoLoss[k] = v
		}
		oneLoss[extract.KeyNetIncomeCurrent] = -50_000
		oneLoss[extract.KeyNetIncomeLast] = 50_000
		twoLoss[extract.KeyNetIncomeCurrent] = -50_000
		twoLoss[extract.KeyNetIncomeLast] = -50_000

		one := OhlsonOScore(extract.NewFacts(extract.FiscalYears{}, oneLoss))
		two := OhlsonOScore(extract.NewFacts(extract.FiscalYears{}, twoLoss))
		// Same current income; the second loss year and the income-change
		// term both push the score up.
		assert.Greater(t, two, one)
	})
}

func TestAltmanZScore(t *testing.T) {
	t.Run("healthy filer in safe zone", func(t *testing.T) {
		z := AltmanZScore(healthyFiler())
		assert.Greater(t, z, 1.23) // above the distress cutoff
	})

	t.Run("exact value", func(t *testing.T) {
		got := AltmanZScore(healthyFiler())
		wc := 600_000.0 - 300_000.0
		ebit := 1_000_000.0 - 600_000 - 200_000
		want := 0.717*(wc/2_000_000) +
			0.847*(500_000.0/2_000_000) +
			3.107*(ebit/2_000_000) +
			0.420*(1_100_000.0/900_000) +
			0.998*(1_000_000.0/2_000_000)
		require.InDelta(t, want, got, 1e-9)
	})

	t.Run("zero liabilities is finite", func(t *testing.T) {
		f := extract.NewFacts(extract.FiscalYears{}, map[string]float64{
			taxonomy.FieldTotalAssets: 1000,
			taxonomy.FieldRevenue:     500,
		})
		z := AltmanZScore(f)
		assert.False(t, math.IsNaN(z) || math.IsInf(z, 0))
	})
}
