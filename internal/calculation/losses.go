package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/openfiling/ctcalc/internal/domain"
)

// lossPool is the carried-forward loss state threaded sequentially
// across the periods of a split accounting period, in chronological
// order. Pools are never apportioned by days: whatever period one does
// not relieve, period two opens with. requested tracks the caller's
// usage cap; nil means no cap. It decrements as amounts are used,
// independently of pool depletion.
type lossPool struct {
	available decimal.Decimal
	requested *decimal.Decimal
}

func newLossPool(broughtForward decimal.Decimal, requested *decimal.Decimal) *lossPool {
	pool := &lossPool{available: decimal.Max(broughtForward, decimal.Zero)}
	if requested != nil {
		capped := decimal.Max(*requested, decimal.Zero)
		pool.requested = &capped
	}
	return pool
}

// relieve uses as much of the pool as the profit base, the remaining
// requested cap and the pool itself allow, then adds the period's own
// unrelieved loss to the carry-forward. It returns the audit record
// for the period and leaves the pool positioned for the next one.
func (lp *lossPool) relieve(profitBase, currentLoss decimal.Decimal) domain.LossPool {
	broughtForward := lp.available

	used := decimal.Min(lp.available, decimal.Max(profitBase, decimal.Zero))
	if lp.requested != nil {
		used = decimal.Min(used, *lp.requested)
	}

	carried := lp.available.Sub(used).Add(decimal.Max(currentLoss, decimal.Zero))

	if lp.requested != nil {
		remaining := lp.requested.Sub(used)
		lp.requested = &remaining
	}
	lp.available = carried

	return domain.LossPool{
		BroughtForward: broughtForward,
		Available:      broughtForward,
		Used:           used,
		CarriedForward: carried,
	}
}

// carriedForward is the pool balance after the periods processed so far.
func (lp *lossPool) carriedForward() decimal.Decimal {
	return lp.available
}
