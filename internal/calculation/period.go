package calculation

import (
	"time"

	"github.com/openfiling/ctcalc/internal/domain"
	"github.com/openfiling/ctcalc/pkg/dateutil"
)

// SplitAccountingPeriod applies the statutory twelve-month rule: an
// accounting period longer than twelve calendar months is split into a
// twelve-month period and a short remainder. The boundary is computed
// with calendar-month arithmetic (day of month clamped to the target
// month), not a fixed day offset, so an exact 366-day leap-year period
// is still a single period.
func SplitAccountingPeriod(start, end time.Time) ([]domain.Period, error) {
	start = dateutil.Normalize(start)
	end = dateutil.Normalize(end)
	if end.Before(start) {
		return nil, &domain.InvalidPeriodError{Start: start, End: end}
	}

	periodOneEnd := dateutil.AddMonthsClamped(start, 12).AddDate(0, 0, -1)
	if !end.After(periodOneEnd) {
		return []domain.Period{{
			Start: start,
			End:   end,
			Days:  dateutil.DaysInclusive(start, end),
		}}, nil
	}

	remainderStart := periodOneEnd.AddDate(0, 0, 1)
	return []domain.Period{
		{
			Start: start,
			End:   periodOneEnd,
			Days:  dateutil.DaysInclusive(start, periodOneEnd),
		},
		{
			Start:         remainderStart,
			End:           end,
			Days:          dateutil.DaysInclusive(remainderStart, end),
			IsShortPeriod: true,
		},
	}, nil
}
