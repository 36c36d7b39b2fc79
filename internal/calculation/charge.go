package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/openfiling/ctcalc/internal/domain"
)

// ChargeSlice applies the three-band marginal relief formula to one
// collapsed slice, filling in its band, charge and relief. All inputs
// are clamped to zero or above before banding:
//
//   - augmented at or below the lower limit: small-profits rate;
//   - augmented at or above the upper limit: main rate;
//   - otherwise: main rate less relief of
//     fraction x (upper - augmented) x (taxable / augmented).
//
// The taxable/augmented ratio is defined as zero when augmented is
// zero; a zero denominator is a guard condition here, never an error.
// Charge and relief stay at full precision inside the Amounts so
// cross-slice aggregation never accumulates rounding error.
func ChargeSlice(s *domain.SliceResult) {
	taxable := decimal.Max(s.TaxableProfit.Exact(), decimal.Zero)
	augmented := decimal.Max(s.AugmentedProfit.Exact(), decimal.Zero)
	lower := decimal.Max(s.LowerLimit.Exact(), decimal.Zero)
	upper := decimal.Max(s.UpperLimit.Exact(), decimal.Zero)

	switch {
	case augmented.LessThanOrEqual(lower):
		s.Band = domain.BandSmallProfits
		s.CTCharge = domain.NewAmount(taxable.Mul(s.SmallRate))
		s.MarginalRelief = domain.NewAmount(decimal.Zero)

	case augmented.GreaterThanOrEqual(upper):
		s.Band = domain.BandMainRate
		s.CTCharge = domain.NewAmount(taxable.Mul(s.MainRate))
		s.MarginalRelief = domain.NewAmount(decimal.Zero)

	default:
		s.Band = domain.BandMarginalRelief
		ratio := decimal.Zero
		if !augmented.IsZero() {
			ratio = taxable.Div(augmented)
		}
		relief := s.ReliefFraction.Mul(upper.Sub(augmented)).Mul(ratio)
		s.MarginalRelief = domain.NewAmount(relief)
		s.CTCharge = domain.NewAmount(taxable.Mul(s.MainRate).Sub(relief))
	}
}
