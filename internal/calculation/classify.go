package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/openfiling/ctcalc/internal/domain"
)

// periodFigures holds the slice of the accounting period's inputs that
// belongs to one period. Profit figures are apportioned by days; loss
// pools are never apportioned and are threaded separately.
type periodFigures struct {
	turnover             decimal.Decimal
	tradingResult        decimal.Decimal // adjusted trading result before AIA
	interestReceived     decimal.Decimal
	propertyResult       decimal.Decimal // signed property business result
	chargeableGains      decimal.Decimal // signed
	dividends            decimal.Decimal
	aiaTradeAdditions    decimal.Decimal
	aiaNonTradeAdditions decimal.Decimal
}

// apportionFigures splits the accounting period's inputs across the
// periods in proportion to their day counts. The last period takes the
// remainder of each figure, not its own scaled share, so the pieces
// always reconstruct the whole with no decimal residue.
func apportionFigures(n *domain.NormalizedInput, periods []domain.Period) []periodFigures {
	whole := periodFigures{
		turnover:             n.Turnover,
		tradingResult:        adjustedTradingResult(n),
		interestReceived:     n.InterestReceived,
		propertyResult:       n.PropertyProfitBeforeLoss(),
		chargeableGains:      n.ChargeableGains,
		dividends:            n.DividendsReceived,
		aiaTradeAdditions:    n.AIATradeAdditions,
		aiaNonTradeAdditions: n.AIANonTradeAdditions,
	}
	if len(periods) == 1 {
		return []periodFigures{whole}
	}

	totalDays := decimal.NewFromInt(int64(n.APDays))
	out := make([]periodFigures, len(periods))
	remaining := whole
	for i, p := range periods {
		if i == len(periods)-1 {
			out[i] = remaining
			break
		}
		ratio := decimal.NewFromInt(int64(p.Days)).Div(totalDays)
		out[i] = whole.scale(ratio)
		remaining = remaining.sub(out[i])
	}
	return out
}

// adjustedTradingResult is the tax-adjusted trading figure for the
// whole accounting period: trading income plus balancing charges and
// add-backs, less deductible expenses. May be negative.
func adjustedTradingResult(n *domain.NormalizedInput) decimal.Decimal {
	return n.Turnover.
		Add(n.GrantIncome).
		Add(n.BalancingCharges).
		Add(n.Depreciation).
		Add(n.DisallowableExpenses).
		Sub(n.TotalExpenses())
}

func (f periodFigures) scale(ratio decimal.Decimal) periodFigures {
	return periodFigures{
		turnover:             f.turnover.Mul(ratio),
		tradingResult:        f.tradingResult.Mul(ratio),
		interestReceived:     f.interestReceived.Mul(ratio),
		propertyResult:       f.propertyResult.Mul(ratio),
		chargeableGains:      f.chargeableGains.Mul(ratio),
		dividends:            f.dividends.Mul(ratio),
		aiaTradeAdditions:    f.aiaTradeAdditions.Mul(ratio),
		aiaNonTradeAdditions: f.aiaNonTradeAdditions.Mul(ratio),
	}
}

func (f periodFigures) sub(o periodFigures) periodFigures {
	return periodFigures{
		turnover:             f.turnover.Sub(o.turnover),
		tradingResult:        f.tradingResult.Sub(o.tradingResult),
		interestReceived:     f.interestReceived.Sub(o.interestReceived),
		propertyResult:       f.propertyResult.Sub(o.propertyResult),
		chargeableGains:      f.chargeableGains.Sub(o.chargeableGains),
		dividends:            f.dividends.Sub(o.dividends),
		aiaTradeAdditions:    f.aiaTradeAdditions.Sub(o.aiaTradeAdditions),
		aiaNonTradeAdditions: f.aiaNonTradeAdditions.Sub(o.aiaNonTradeAdditions),
	}
}

// profitStreams is the classified taxable base of one period before
// loss relief.
type profitStreams struct {
	tradingBeforeAIA    decimal.Decimal
	nonTradingBeforeAIA decimal.Decimal

	// Floored property stream and the current-period property loss
	// that was carved out of it.
	propertyProfit      decimal.Decimal
	currentPropertyLoss decimal.Decimal

	// Ring-fenced: a negative gains figure never offsets the other
	// streams and is reported, not relieved.
	capitalLossUnrelieved decimal.Decimal
}

// classifyProfits splits a period's taxable base into the trading and
// non-trading streams. The non-trading stream is built from its
// components with losses floored out; the trading stream is what
// remains of the total, which is how turnover, grants and balancing
// charges land in the trading bucket without being enumerated here.
func classifyProfits(f periodFigures) profitStreams {
	s := profitStreams{
		propertyProfit:        decimal.Max(f.propertyResult, decimal.Zero),
		currentPropertyLoss:   decimal.Max(f.propertyResult.Neg(), decimal.Zero),
		capitalLossUnrelieved: decimal.Max(f.chargeableGains.Neg(), decimal.Zero),
	}
	gains := decimal.Max(f.chargeableGains, decimal.Zero)

	s.nonTradingBeforeAIA = f.interestReceived.Add(s.propertyProfit).Add(gains)
	total := f.tradingResult.Add(s.nonTradingBeforeAIA)
	s.tradingBeforeAIA = total.Sub(s.nonTradingBeforeAIA)
	return s
}
