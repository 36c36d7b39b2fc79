package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfiling/ctcalc/internal/domain"
)

const overrideTaxYearYAML = `
tax_years:
  - fy_year: 2027
    start_date: 2027-04-01
    end_date: 2028-03-31
    aia_limit: 1000000
    tiers:
      - rate: "0.19"
        threshold: "0"
      - rate: "0.26"
        threshold: "50000"
        relief_fraction: "0.015"
      - rate: "0.26"
        threshold: "250000"
  - fy_year: 2024
    start_date: 2024-04-01
    end_date: 2025-03-31
    aia_limit: 1000000
    tiers:
      - rate: "0.20"
        threshold: "0"
      - rate: "0.26"
        threshold: "60000"
        relief_fraction: "0.015"
      - rate: "0.26"
        threshold: "300000"
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTaxYearsFromFile(t *testing.T) {
	path := writeTempFile(t, "tax_years.yaml", overrideTaxYearYAML)

	years, err := LoadTaxYearsFromFile(path)
	require.NoError(t, err)
	require.Len(t, years, 2)

	// Returned in chronological order regardless of file order.
	assert.Equal(t, 2024, years[0].FYYear)
	assert.Equal(t, 2027, years[1].FYYear)
	assert.True(t, years[0].SmallRate().Equal(decimal.NewFromFloat(0.20)))
	assert.True(t, years[0].LowerLimit().Equal(decimal.NewFromInt(60000)))
	assert.True(t, years[1].MainRate().Equal(decimal.NewFromFloat(0.26)))
}

func TestLoadTaxYearsFromFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTaxYearsFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("empty table", func(t *testing.T) {
		path := writeTempFile(t, "empty.yaml", "tax_years: []\n")
		_, err := LoadTaxYearsFromFile(path)
		assert.ErrorContains(t, err, "defines no tax years")
	})

	t.Run("invalid thresholds", func(t *testing.T) {
		bad := `
tax_years:
  - fy_year: 2024
    start_date: 2024-04-01
    end_date: 2025-03-31
    aia_limit: 1000000
    tiers:
      - rate: "0.19"
        threshold: "0"
      - rate: "0.25"
        threshold: "250000"
      - rate: "0.25"
        threshold: "50000"
`
		path := writeTempFile(t, "bad.yaml", bad)
		_, err := LoadTaxYearsFromFile(path)
		assert.ErrorContains(t, err, "strictly increasing")
	})
}

func TestMergeTaxYears(t *testing.T) {
	base := domain.DefaultTaxYears()
	path := writeTempFile(t, "tax_years.yaml", overrideTaxYearYAML)
	overrides, err := LoadTaxYearsFromFile(path)
	require.NoError(t, err)

	merged := MergeTaxYears(base, overrides)

	// One replaced year, one appended year.
	assert.Len(t, merged, len(base)+1)

	byYear := make(map[int]domain.TaxYearDefinition, len(merged))
	for _, ty := range merged {
		byYear[ty.FYYear] = ty
	}
	assert.True(t, byYear[2024].LowerLimit().Equal(decimal.NewFromInt(60000)), "override must replace the base entry")
	assert.True(t, byYear[2023].LowerLimit().Equal(decimal.NewFromInt(50000)), "untouched years keep base values")
	assert.Contains(t, byYear, 2027)

	// Chronological order.
	for i := 1; i < len(merged); i++ {
		assert.Less(t, merged[i-1].FYYear, merged[i].FYYear)
	}
}

func TestInputParserLoadFromFile(t *testing.T) {
	inputYAML := `
accountingPeriodStart: 2024-04-01
accountingPeriodEnd: 2025-03-31
turnover: 100000
costOfSales: 40000
staffCosts: 20000
interestPaid: 5000
adminExpenses: 10000
`
	path := writeTempFile(t, "input.yaml", inputYAML)

	n, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 365, n.APDays)
	assert.True(t, n.Turnover.Equal(decimal.NewFromInt(100000)))
	assert.True(t, n.InterestPaid.Equal(decimal.NewFromInt(5000)))
}

func TestInputParserLoadFromFileValidation(t *testing.T) {
	path := writeTempFile(t, "input.yaml", "turnover: 100000\n")

	_, err := NewInputParser().LoadFromFile(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "input validation failed")
}
