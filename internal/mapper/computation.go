package mapper

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openfiling/ctcalc/internal/domain"
)

// ScheduleLine is one labelled row of the tax computation schedule.
type ScheduleLine struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// ComputationSchedule is the corporation tax computation as a flat
// list of presentation lines, with per-slice rate workings.
type ComputationSchedule struct {
	AdjustedProfit []ScheduleLine `json:"adjusted_profit"`
	Deductions     []ScheduleLine `json:"deductions"`
	Workings       []ScheduleLine `json:"workings"`
}

// MapComputation relabels a run into the computation schedule. Lines
// use rounded reporting figures throughout.
func MapComputation(run *domain.RunResult) *ComputationSchedule {
	n, res := run.Normalized, run.Result
	sched := &ComputationSchedule{}

	add := func(dst *[]ScheduleLine, label string, amount decimal.Decimal) {
		*dst = append(*dst, ScheduleLine{Label: label, Amount: domain.RoundHalfAwayFromZero(amount)})
	}

	add(&sched.AdjustedProfit, "Profit before tax per accounts", n.AccountsProfitBeforeTax())
	add(&sched.AdjustedProfit, "Add: depreciation", n.Depreciation)
	add(&sched.AdjustedProfit, "Add: disallowable expenses", n.DisallowableExpenses)
	add(&sched.AdjustedProfit, "Add: balancing charges", n.BalancingCharges)
	add(&sched.AdjustedProfit, "Less: dividends received", n.DividendsReceived.Neg())
	add(&sched.AdjustedProfit, "Taxable trading profit", res.Computation.TaxableTradingProfit.Exact())
	add(&sched.AdjustedProfit, "Non-trading profits", res.Computation.TaxableNonTradingProfits.Exact())

	add(&sched.Deductions, "Capital allowances (AIA)", res.Computation.CapitalAllowances.Exact())
	add(&sched.Deductions, "Trading losses brought forward used", res.Computation.TradingLossUsed.Exact())
	add(&sched.Deductions, "Property losses used", res.Property.PropertyLossUsed.Exact())
	add(&sched.Deductions, "Taxable total profits", res.Computation.TaxableTotalProfits.Exact())
	add(&sched.Deductions, "Augmented profits", res.Computation.AugmentedProfits.Exact())

	for _, s := range res.Slices {
		label := fmt.Sprintf("FY%d", s.FYYears[0])
		if len(s.FYYears) > 1 {
			label = fmt.Sprintf("FY%d-FY%d", s.FYYears[0], s.FYYears[len(s.FYYears)-1])
		}
		add(&sched.Workings, fmt.Sprintf("%s profit (%d days)", label, s.Days), s.TaxableProfit.Exact())
		rate := effectiveSliceRate(s)
		add(&sched.Workings, fmt.Sprintf("%s tax at %s%%", label, rate.Mul(decimal.NewFromInt(100)).StringFixed(0)), s.TaxableProfit.Exact().Mul(rate))
		if s.Band == domain.BandMarginalRelief {
			add(&sched.Workings, fmt.Sprintf("%s marginal relief", label), s.MarginalRelief.Exact().Neg())
		}
		add(&sched.Workings, fmt.Sprintf("%s corporation tax", label), s.CTCharge.Exact())
	}
	add(&sched.Workings, "Corporation tax chargeable", res.Tax.CorporationTaxCharge.Exact())

	return sched
}

// effectiveSliceRate is the statutory rate the slice's gross charge
// was computed at, before marginal relief.
func effectiveSliceRate(s domain.SliceResult) decimal.Decimal {
	if s.Band == domain.BandSmallProfits {
		return s.SmallRate
	}
	return s.MainRate
}
