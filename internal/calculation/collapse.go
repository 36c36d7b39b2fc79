package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/openfiling/ctcalc/internal/domain"
)

// distributeProfits spreads a period's taxable and augmented profit
// across its FY overlaps in proportion to days, giving the final
// overlap the remainder so the overlap figures always sum back to the
// period figures exactly.
func distributeProfits(overlaps []domain.FYOverlap, taxable, augmented decimal.Decimal, periodDays int) {
	totalDays := decimal.NewFromInt(int64(periodDays))
	remTaxable, remAugmented := taxable, augmented
	for i := range overlaps {
		o := &overlaps[i]
		if i == len(overlaps)-1 {
			o.TaxableProfit = remTaxable
			o.AugmentedProfit = remAugmented
			break
		}
		ratio := decimal.NewFromInt(int64(o.DaysInFY)).Div(totalDays)
		o.TaxableProfit = taxable.Mul(ratio)
		o.AugmentedProfit = augmented.Mul(ratio)
		remTaxable = remTaxable.Sub(o.TaxableProfit)
		remAugmented = remAugmented.Sub(o.AugmentedProfit)
	}
}

// sameRegime reports whether two overlaps share a rate signature. Two
// financial years with identical rates, relief fraction and annual
// threshold bases are the same regime even though they are distinct
// years; splitting the computation at their boundary would only
// introduce spurious rounding seams.
func sameRegime(a, b domain.FYOverlap) bool {
	return a.SmallRate.Equal(b.SmallRate) &&
		a.MainRate.Equal(b.MainRate) &&
		a.ReliefFraction.Equal(b.ReliefFraction) &&
		a.AnnualLower.Equal(b.AnnualLower) &&
		a.AnnualUpper.Equal(b.AnnualUpper)
}

// CollapseRegimes merges contiguous FY overlaps that share a rate
// signature into the minimum number of calculation slices, summing
// their profits, thresholds and AIA caps. Marginal relief is then
// computed once over the true combined band rather than artificially
// split at a financial year boundary with no rate change.
func CollapseRegimes(overlaps []domain.FYOverlap) []domain.SliceResult {
	var slices []domain.SliceResult
	var current *domain.SliceResult
	var lastOverlap domain.FYOverlap
	for _, o := range overlaps {
		if current != nil && sameRegime(lastOverlap, o) {
			current.FYYears = append(current.FYYears, o.FYYear)
			current.End = o.End
			current.Days += o.DaysInFY
			current.TaxableProfit = current.TaxableProfit.AddDecimal(o.TaxableProfit)
			current.AugmentedProfit = current.AugmentedProfit.AddDecimal(o.AugmentedProfit)
			current.LowerLimit = current.LowerLimit.AddDecimal(o.LowerLimit)
			current.UpperLimit = current.UpperLimit.AddDecimal(o.UpperLimit)
			current.AIACap = current.AIACap.AddDecimal(o.AIACap)
			lastOverlap = o
			continue
		}
		slices = append(slices, domain.SliceResult{
			FYYears:         []int{o.FYYear},
			Start:           o.Start,
			End:             o.End,
			Days:            o.DaysInFY,
			TaxableProfit:   domain.NewAmount(o.TaxableProfit),
			AugmentedProfit: domain.NewAmount(o.AugmentedProfit),
			LowerLimit:      domain.NewAmount(o.LowerLimit),
			UpperLimit:      domain.NewAmount(o.UpperLimit),
			AIACap:          domain.NewAmount(o.AIACap),
			SmallRate:       o.SmallRate,
			MainRate:        o.MainRate,
			ReliefFraction:  o.ReliefFraction,
		})
		current = &slices[len(slices)-1]
		lastOverlap = o
	}
	return slices
}
