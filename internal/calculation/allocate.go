package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/openfiling/ctcalc/internal/domain"
)

// ApportionAllowances fills in the marginal-relief thresholds and AIA
// cap on each overlap of a period, dividing by the associated-company
// divisor. The two period kinds apportion differently, and the
// asymmetry is deliberate:
//
//   - a full twelve-month period takes each year's annual figure over
//     the divisor and spreads it across its overlaps by share of the
//     period's days, so the aggregate never exceeds the annual figure;
//   - a short period prorates each year's annual figure by the
//     overlap's share of that financial year's own length, with no
//     period-level renormalization, so an abbreviated period receives
//     proportionally less than a full year's allowance.
func ApportionAllowances(period domain.Period, overlaps []domain.FYOverlap, associatedCompanies int) {
	divisor := decimal.NewFromInt(int64(associatedCompanies) + 1)
	periodDays := decimal.NewFromInt(int64(period.Days))

	for i := range overlaps {
		o := &overlaps[i]
		days := decimal.NewFromInt(int64(o.DaysInFY))

		if period.IsShortPeriod {
			fyDays := decimal.NewFromInt(int64(o.FYTotalDays))
			if fyDays.IsZero() {
				// Degenerate reference entry; treat the year as
				// contributing nothing rather than dividing by zero.
				continue
			}
			o.LowerLimit = o.AnnualLower.Mul(days).Div(fyDays).Div(divisor)
			o.UpperLimit = o.AnnualUpper.Mul(days).Div(fyDays).Div(divisor)
			o.AIACap = o.AnnualAIA.Mul(days).Div(fyDays).Div(divisor)
			continue
		}

		o.LowerLimit = o.AnnualLower.Div(divisor).Mul(days).Div(periodDays)
		o.UpperLimit = o.AnnualUpper.Div(divisor).Mul(days).Div(periodDays)
		o.AIACap = o.AnnualAIA.Div(divisor).Mul(days).Div(periodDays)
	}
}

// PeriodAIACap sums the per-overlap AIA caps into the shared cap for
// the period.
func PeriodAIACap(overlaps []domain.FYOverlap) decimal.Decimal {
	cap := decimal.Zero
	for _, o := range overlaps {
		cap = cap.Add(o.AIACap)
	}
	return cap
}

// AllocateSharedCap divides the period's AIA cap between the trading
// and non-trading addition requests. Requests that fit within the cap
// are granted in full. Otherwise the cap is split in proportion to
// each side's requested share, each grant is clamped to its own
// request, and any headroom left by the clamp (including decimal
// division remainder) is redistributed to whichever side still has
// unmet request, trade first. When the combined request reaches the
// cap the grants sum to the cap exactly.
func AllocateSharedCap(tradeRequested, nonTradeRequested, cap decimal.Decimal) (trade, nonTrade decimal.Decimal) {
	tradeRequested = decimal.Max(tradeRequested, decimal.Zero)
	nonTradeRequested = decimal.Max(nonTradeRequested, decimal.Zero)
	cap = decimal.Max(cap, decimal.Zero)

	total := tradeRequested.Add(nonTradeRequested)
	if total.LessThanOrEqual(cap) {
		return tradeRequested, nonTradeRequested
	}

	// total now exceeds the non-negative cap, so it is a safe division
	// denominator.
	trade = decimal.Min(cap.Mul(tradeRequested).Div(total), tradeRequested)
	nonTrade = decimal.Min(cap.Mul(nonTradeRequested).Div(total), nonTradeRequested)

	headroom := cap.Sub(trade).Sub(nonTrade)
	if headroom.IsPositive() {
		extra := decimal.Min(headroom, tradeRequested.Sub(trade))
		trade = trade.Add(extra)
		headroom = headroom.Sub(extra)
	}
	if headroom.IsPositive() {
		nonTrade = nonTrade.Add(decimal.Min(headroom, nonTradeRequested.Sub(nonTrade)))
	}
	return trade, nonTrade
}
