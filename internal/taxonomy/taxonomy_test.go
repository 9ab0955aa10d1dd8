package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	// Every canonical field must carry at least one alias.
	for _, field := range []string{
		FieldTotalAssets, FieldCurrentAssets, FieldCash, FieldShortTermInvestments,
		FieldAccountsReceivable, FieldInventory, FieldTotalLiabilities,
		FieldCurrentLiabilities, FieldStockholdersEquity, FieldRetainedEarnings,
	} {
		assert.NotEmptyf(t, table.Aliases(BalanceSheet, field), "balance sheet field %s", field)
	}
	for _, field := range []string{
		FieldRevenue, FieldNetIncome, FieldCostOfGoodsSold, FieldGrossProfit,
		FieldOperatingIncome, FieldOperatingExpenses, FieldInterestExpense,
		FieldEarningsPerShare,
	} {
		assert.NotEmptyf(t, table.Aliases(IncomeStatement, field), "income statement field %s", field)
	}
	for _, field := range []string{
		FieldOperatingCashFlow, FieldInvestingCashFlow, FieldFinancingCashFlow,
		FieldDepreciation, FieldCapitalExpenditure,
	} {
		assert.NotEmptyf(t, table.Aliases(CashFlow, field), "cash flow field %s", field)
	}

	assert.NotEmpty(t, table.NoncurrentLiabilities)
}

func TestAliasOrdering(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	// Ordering is load-bearing: the first alias that yields a value wins.
	rev := table.RevenueAliases()
	require.NotEmpty(t, rev)
	assert.Equal(t, "Revenues", rev[0])

	ni := table.Aliases(IncomeStatement, FieldNetIncome)
	require.NotEmpty(t, ni)
	assert.Equal(t, "NetIncomeLoss", ni[0])
}

func TestAliasesUnknownCategory(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)
	assert.Nil(t, table.Aliases(Category("bogus"), FieldRevenue))
}
