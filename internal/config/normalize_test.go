package config

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfiling/ctcalc/internal/domain"
	"github.com/openfiling/ctcalc/pkg/dateutil"
)

func TestNormalizeInputCanonicalFields(t *testing.T) {
	raw := domain.RawInput{
		"accountingPeriodStart": "2024-04-01",
		"accountingPeriodEnd":   "2025-03-31",
		"associatedCompanies":   2,
		"turnover":              100000,
		"costOfSales":           "40000",
		"staffCosts":            20000.0,
		"chargeableGains":       -5000,
	}

	n, err := NormalizeInput(raw)
	require.NoError(t, err)

	assert.Equal(t, dateutil.Date(2024, time.April, 1), n.APStart)
	assert.Equal(t, dateutil.Date(2025, time.March, 31), n.APEnd)
	assert.Equal(t, 365, n.APDays)
	assert.Equal(t, 2, n.AssociatedCompanies)
	assert.True(t, n.Turnover.Equal(decimal.NewFromInt(100000)))
	assert.True(t, n.CostOfSales.Equal(decimal.NewFromInt(40000)))
	assert.True(t, n.StaffCosts.Equal(decimal.NewFromInt(20000)))
	assert.True(t, n.ChargeableGains.Equal(decimal.NewFromInt(-5000)))

	// Absent fields default to zero; absent usage requests stay nil.
	assert.True(t, n.GrantIncome.IsZero())
	assert.Nil(t, n.TradingLossToUse)
	assert.Nil(t, n.PropertyLossToUse)
}

func TestNormalizeInputLegacyAliases(t *testing.T) {
	raw := domain.RawInput{
		"apStart":              "2024-04-01",
		"periodEnd":            "2025-03-31",
		"sales":                100000,
		"cogs":                 40000,
		"wages":                20000,
		"rentalIncome":         12000,
		"capitalGains":         3000,
		"lossesBroughtForward": 9000,
	}

	n, err := NormalizeInput(raw)
	require.NoError(t, err)

	assert.True(t, n.Turnover.Equal(decimal.NewFromInt(100000)))
	assert.True(t, n.CostOfSales.Equal(decimal.NewFromInt(40000)))
	assert.True(t, n.StaffCosts.Equal(decimal.NewFromInt(20000)))
	assert.True(t, n.PropertyIncome.Equal(decimal.NewFromInt(12000)))
	assert.True(t, n.ChargeableGains.Equal(decimal.NewFromInt(3000)))
	assert.True(t, n.TradingLossBroughtForward.Equal(decimal.NewFromInt(9000)))
}

func TestNormalizeInputCanonicalWinsOverAlias(t *testing.T) {
	raw := domain.RawInput{
		"accountingPeriodStart": "2024-04-01",
		"accountingPeriodEnd":   "2025-03-31",
		"turnover":              100000,
		"sales":                 999999,
	}

	n, err := NormalizeInput(raw)
	require.NoError(t, err)
	assert.True(t, n.Turnover.Equal(decimal.NewFromInt(100000)))
}

func TestNormalizeInputExplicitZeroRequestIsACap(t *testing.T) {
	raw := domain.RawInput{
		"accountingPeriodStart": "2024-04-01",
		"accountingPeriodEnd":   "2025-03-31",
		"tradingLossToUse":      0,
	}

	n, err := NormalizeInput(raw)
	require.NoError(t, err)
	require.NotNil(t, n.TradingLossToUse)
	assert.True(t, n.TradingLossToUse.IsZero())
}

func TestNormalizeInputErrors(t *testing.T) {
	base := func() domain.RawInput {
		return domain.RawInput{
			"accountingPeriodStart": "2024-04-01",
			"accountingPeriodEnd":   "2025-03-31",
		}
	}

	tests := []struct {
		name      string
		mutate    func(domain.RawInput)
		wantField string
	}{
		{
			name:      "missing start date",
			mutate:    func(r domain.RawInput) { delete(r, "accountingPeriodStart") },
			wantField: "accountingPeriodStart",
		},
		{
			name:      "unparseable date",
			mutate:    func(r domain.RawInput) { r["accountingPeriodEnd"] = "31/03/2025" },
			wantField: "accountingPeriodEnd",
		},
		{
			name:      "negative turnover",
			mutate:    func(r domain.RawInput) { r["turnover"] = -1 },
			wantField: "turnover",
		},
		{
			name:      "negative usage request",
			mutate:    func(r domain.RawInput) { r["tradingLossToUse"] = -100 },
			wantField: "tradingLossToUse",
		},
		{
			name:      "fractional company count",
			mutate:    func(r domain.RawInput) { r["associatedCompanies"] = 1.5 },
			wantField: "associatedCompanies",
		},
		{
			name:      "unparseable amount",
			mutate:    func(r domain.RawInput) { r["staffCosts"] = "lots" },
			wantField: "staffCosts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := base()
			tt.mutate(raw)

			_, err := NormalizeInput(raw)
			require.Error(t, err)

			var inputErr *domain.InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.wantField, inputErr.Field)
		})
	}
}

func TestNormalizeInputRejectsReversedPeriod(t *testing.T) {
	raw := domain.RawInput{
		"accountingPeriodStart": "2025-03-31",
		"accountingPeriodEnd":   "2024-04-01",
	}

	_, err := NormalizeInput(raw)
	require.Error(t, err)

	var periodErr *domain.InvalidPeriodError
	assert.ErrorAs(t, err, &periodErr)
}

func TestNormalizeInputUint64Amounts(t *testing.T) {
	// YAML decodes integers above MaxInt64 as uint64, so the coercion
	// has to handle the type; values past the int64 range are rejected
	// rather than wrapped negative.
	raw := domain.RawInput{
		"accountingPeriodStart": "2024-04-01",
		"accountingPeriodEnd":   "2025-03-31",
		"turnover":              uint64(2000000),
	}

	n, err := NormalizeInput(raw)
	require.NoError(t, err)
	assert.True(t, n.Turnover.Equal(decimal.NewFromInt(2000000)))

	raw["turnover"] = uint64(math.MaxInt64) + 1
	_, err = NormalizeInput(raw)
	require.Error(t, err)

	var inputErr *domain.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "turnover", inputErr.Field)
}

func TestNormalizeInputNegativeGainsAllowed(t *testing.T) {
	raw := domain.RawInput{
		"accountingPeriodStart": "2024-04-01",
		"accountingPeriodEnd":   "2025-03-31",
		"chargeableGains":       -12000,
	}

	n, err := NormalizeInput(raw)
	require.NoError(t, err)
	assert.True(t, n.ChargeableGains.Equal(decimal.NewFromInt(-12000)))
}

func TestAliasTableIsSortedAndComplete(t *testing.T) {
	rows := AliasTable()
	require.NotEmpty(t, rows)

	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i-1][0] < rows[i][0], "rows out of order at %d", i)
	}
	for _, row := range rows {
		_, ok := fieldAliases[row[1]]
		assert.True(t, ok, "alias %q maps to unknown canonical field %q", row[0], row[1])
	}
}
