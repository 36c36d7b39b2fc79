package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openfiling/ctcalc/pkg/dateutil"
)

// RateTier is one band of the corporation tax rate structure for a
// financial year. Tiers are ordered small profits -> marginal band ->
// main rate; Threshold is the lower bound of the band on augmented
// profits, and ReliefFraction is non-zero only on the marginal tier.
type RateTier struct {
	Rate           decimal.Decimal `yaml:"rate" json:"rate"`
	Threshold      decimal.Decimal `yaml:"threshold" json:"threshold"`
	ReliefFraction decimal.Decimal `yaml:"relief_fraction" json:"relief_fraction"`
}

// TaxYearDefinition is the reference data for one UK financial year
// (1 April to 31 March). It is immutable input to the engine; nothing
// in a computation ever writes to it.
type TaxYearDefinition struct {
	FYYear    int             `yaml:"fy_year" json:"fy_year"`
	StartDate time.Time       `yaml:"start_date" json:"start_date"`
	EndDate   time.Time       `yaml:"end_date" json:"end_date"`
	Tiers     [3]RateTier     `yaml:"tiers" json:"tiers"`
	AIALimit  decimal.Decimal `yaml:"aia_limit" json:"aia_limit"`
}

// SmallRate is the small-profits rate for the year.
func (ty TaxYearDefinition) SmallRate() decimal.Decimal { return ty.Tiers[0].Rate }

// MainRate is the full rate charged above the upper limit.
func (ty TaxYearDefinition) MainRate() decimal.Decimal { return ty.Tiers[2].Rate }

// LowerLimit is the annual augmented-profit threshold below which the
// small-profits rate applies, before any associated-company division.
func (ty TaxYearDefinition) LowerLimit() decimal.Decimal { return ty.Tiers[1].Threshold }

// UpperLimit is the annual threshold above which the main rate applies
// with no relief.
func (ty TaxYearDefinition) UpperLimit() decimal.Decimal { return ty.Tiers[2].Threshold }

// ReliefFraction is the statutory marginal relief fraction (3/200 from
// FY2023). Zero in flat-rate years.
func (ty TaxYearDefinition) ReliefFraction() decimal.Decimal { return ty.Tiers[1].ReliefFraction }

// TotalDays is the day count of the financial year itself (365 or 366).
func (ty TaxYearDefinition) TotalDays() int {
	return dateutil.DaysInclusive(ty.StartDate, ty.EndDate)
}

// Validate checks the structural invariants of a definition: tier
// thresholds strictly increasing with the first at zero, and a
// coherent date range.
func (ty TaxYearDefinition) Validate() error {
	if !ty.EndDate.After(ty.StartDate) {
		return fmt.Errorf("tax year %d: end date must be after start date", ty.FYYear)
	}
	if !ty.Tiers[0].Threshold.IsZero() {
		return fmt.Errorf("tax year %d: first tier threshold must be zero", ty.FYYear)
	}
	for i := 1; i < len(ty.Tiers); i++ {
		if ty.Tiers[i].Threshold.LessThanOrEqual(ty.Tiers[i-1].Threshold) {
			return fmt.Errorf("tax year %d: tier thresholds must be strictly increasing", ty.FYYear)
		}
	}
	if ty.AIALimit.IsNegative() {
		return fmt.Errorf("tax year %d: AIA limit cannot be negative", ty.FYYear)
	}
	return nil
}

// ukFinancialYear builds a standard 1 April - 31 March definition.
func ukFinancialYear(fy int, small, lower, fraction, upper, main, aia decimal.Decimal) TaxYearDefinition {
	return TaxYearDefinition{
		FYYear:    fy,
		StartDate: dateutil.Date(fy, time.April, 1),
		EndDate:   dateutil.Date(fy+1, time.March, 31),
		Tiers: [3]RateTier{
			{Rate: small, Threshold: decimal.Zero},
			{Rate: main, Threshold: lower, ReliefFraction: fraction},
			{Rate: main, Threshold: upper},
		},
		AIALimit: aia,
	}
}

// DefaultTaxYears returns the built-in reference table covering FY2017
// through FY2026. The flat 19% years carry the FY2023 threshold shape
// with a zero relief fraction so the regime collapser can merge them
// across year boundaries. Callers get a fresh slice on every call; the
// table backing the engine default is never shared mutable state.
func DefaultTaxYears() []TaxYearDefinition {
	var (
		nineteen   = decimal.NewFromFloat(0.19)
		twentyFive = decimal.NewFromFloat(0.25)
		lower      = decimal.NewFromInt(50000)
		upper      = decimal.NewFromInt(250000)
		fraction   = decimal.NewFromInt(3).Div(decimal.NewFromInt(200))
		aia200k    = decimal.NewFromInt(200000)
		aia1m      = decimal.NewFromInt(1000000)
	)

	years := []TaxYearDefinition{
		ukFinancialYear(2017, nineteen, lower, decimal.Zero, upper, nineteen, aia200k),
		ukFinancialYear(2018, nineteen, lower, decimal.Zero, upper, nineteen, aia200k),
		ukFinancialYear(2019, nineteen, lower, decimal.Zero, upper, nineteen, aia1m),
		ukFinancialYear(2020, nineteen, lower, decimal.Zero, upper, nineteen, aia1m),
		ukFinancialYear(2021, nineteen, lower, decimal.Zero, upper, nineteen, aia1m),
		ukFinancialYear(2022, nineteen, lower, decimal.Zero, upper, nineteen, aia1m),
		ukFinancialYear(2023, nineteen, lower, fraction, upper, twentyFive, aia1m),
		ukFinancialYear(2024, nineteen, lower, fraction, upper, twentyFive, aia1m),
		ukFinancialYear(2025, nineteen, lower, fraction, upper, twentyFive, aia1m),
		ukFinancialYear(2026, nineteen, lower, fraction, upper, twentyFive, aia1m),
	}
	return years
}
