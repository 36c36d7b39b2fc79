package mapper

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfiling/ctcalc/internal/calculation"
	"github.com/openfiling/ctcalc/internal/domain"
)

func marginalReliefRun(t *testing.T) *domain.RunResult {
	t.Helper()
	run, err := calculation.NewEngine().Run(domain.RawInput{
		"accountingPeriodStart": "2024-04-01",
		"accountingPeriodEnd":   "2025-03-31",
		"turnover":              250000,
		"costOfSales":           80000,
		"staffCosts":            50000,
		"interestPaid":          5000,
		"adminExpenses":         15000,
		"dividendsReceived":     10000,
	})
	require.NoError(t, err)
	return run
}

func TestMapCT600(t *testing.T) {
	run := marginalReliefRun(t)
	ret := MapCT600(run)

	assert.Equal(t, "2024-04-01", ret.PeriodStart)
	assert.Equal(t, "2025-03-31", ret.PeriodEnd)
	assert.True(t, ret.Turnover.Equal(decimal.NewFromInt(250000)))
	assert.True(t, ret.TradingProfits.Equal(decimal.NewFromInt(100000)))
	assert.True(t, ret.ProfitsChargeable.Equal(decimal.NewFromInt(100000)))
	assert.True(t, ret.ExemptDistributions.Equal(decimal.NewFromInt(10000)))

	// Box 430 is the gross charge; 435 the relief; 440 their difference.
	assert.True(t, ret.CorporationTax.Equal(ret.CorporationTaxNet.Add(ret.MarginalRelief)),
		"box 430 (%s) must be box 440 (%s) plus box 435 (%s)",
		ret.CorporationTax, ret.CorporationTaxNet, ret.MarginalRelief)
	assert.True(t, ret.MarginalRelief.IsPositive())

	require.Len(t, ret.FinancialYears, 1)
	assert.Equal(t, 2024, ret.FinancialYears[0].Year)
	assert.True(t, ret.FinancialYears[0].Rate.Equal(decimal.NewFromFloat(0.25)))
}

func TestMapCT600BoxValues(t *testing.T) {
	run := marginalReliefRun(t)
	boxes := MapCT600(run).BoxValues()

	assert.Equal(t, "2024-04-01", boxes["30"])
	assert.Equal(t, "250000", boxes["145"])
	assert.Equal(t, "100000", boxes["315"])
	assert.Equal(t, "0", boxes["326"])

	// Single collapsed slice fills the first financial-year block only.
	assert.Equal(t, "2024", boxes["330"])
	assert.Contains(t, boxes, "335")
	assert.NotContains(t, boxes, "380")
}

func TestMapCT600TwoFinancialYearBlocks(t *testing.T) {
	// A calendar-year period straddles the FY2022/FY2023 rate change,
	// producing two slices and both form blocks.
	run, err := calculation.NewEngine().Run(domain.RawInput{
		"accountingPeriodStart": "2023-01-01",
		"accountingPeriodEnd":   "2023-12-31",
		"turnover":              500000,
	})
	require.NoError(t, err)

	ret := MapCT600(run)
	require.Len(t, ret.FinancialYears, 2)
	assert.Equal(t, 2022, ret.FinancialYears[0].Year)
	assert.Equal(t, 2023, ret.FinancialYears[1].Year)

	boxes := ret.BoxValues()
	assert.Equal(t, "2022", boxes["330"])
	assert.Equal(t, "2023", boxes["380"])
}

func TestBoxNumbersSortedNumerically(t *testing.T) {
	numbers := MapCT600(marginalReliefRun(t)).BoxNumbers()
	require.NotEmpty(t, numbers)

	// "35" must sort before "145" despite the string ordering.
	idx := make(map[string]int, len(numbers))
	for i, n := range numbers {
		idx[n] = i
	}
	assert.Less(t, idx["35"], idx["145"])
	assert.Less(t, idx["30"], idx["35"])
}

func TestMapComputation(t *testing.T) {
	run := marginalReliefRun(t)
	sched := MapComputation(run)

	require.NotEmpty(t, sched.AdjustedProfit)
	require.NotEmpty(t, sched.Workings)

	byLabel := make(map[string]decimal.Decimal)
	for _, line := range append(append(sched.AdjustedProfit, sched.Deductions...), sched.Workings...) {
		byLabel[line.Label] = line.Amount
	}

	assert.True(t, byLabel["Taxable trading profit"].Equal(decimal.NewFromInt(100000)))
	assert.True(t, byLabel["Taxable total profits"].Equal(decimal.NewFromInt(100000)))
	assert.True(t, byLabel["Augmented profits"].Equal(decimal.NewFromInt(110000)))
	assert.True(t, byLabel["FY2024 profit (365 days)"].Equal(decimal.NewFromInt(100000)))
	assert.True(t, byLabel["FY2024 marginal relief"].IsNegative())
	assert.True(t, byLabel["Corporation tax chargeable"].Equal(run.Result.Tax.CorporationTaxCharge.Rounded()))
}

func TestMapComputationUsesSliceRateForLabel(t *testing.T) {
	run, err := calculation.NewEngine().Run(domain.RawInput{
		"accountingPeriodStart": "2024-04-01",
		"accountingPeriodEnd":   "2025-03-31",
		"turnover":              40000,
	})
	require.NoError(t, err)

	sched := MapComputation(run)
	var found bool
	for _, line := range sched.Workings {
		if line.Label == "FY2024 tax at 19%" {
			found = true
			assert.True(t, line.Amount.Equal(decimal.NewFromInt(7600)))
		}
	}
	assert.True(t, found, "small-profits slice must be labelled at 19%%")
}

func TestMapAccounts(t *testing.T) {
	run := marginalReliefRun(t)
	stmt := MapAccounts(run)

	assert.True(t, stmt.Turnover.Equal(decimal.NewFromInt(250000)))
	assert.True(t, stmt.GrossProfit.Equal(decimal.NewFromInt(170000)))
	assert.True(t, stmt.OtherIncome.Equal(decimal.NewFromInt(10000)))
	assert.True(t, stmt.OperatingExpenses.Equal(decimal.NewFromInt(65000)))
	assert.True(t, stmt.InterestPayable.Equal(decimal.NewFromInt(5000)))

	// PBT includes dividends; tax comes from the computation, so the
	// statement's after-tax line reconciles exactly.
	assert.True(t, stmt.ProfitBeforeTax.Equal(decimal.NewFromInt(110000)))
	assert.True(t, stmt.ProfitAfterTax.Equal(stmt.ProfitBeforeTax.Sub(stmt.TaxOnProfit)))
}
