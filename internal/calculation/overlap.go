package calculation

import (
	"sort"

	"github.com/openfiling/ctcalc/internal/domain"
	"github.com/openfiling/ctcalc/pkg/dateutil"
)

// ResolveFYOverlaps intersects a period against every financial year
// in the reference table and returns one overlap record per year that
// shares at least one day with the period, in chronological order.
// Each record carries the year's full rate signature so later stages
// never look the year up again.
func ResolveFYOverlaps(period domain.Period, taxYears []domain.TaxYearDefinition) ([]domain.FYOverlap, error) {
	var overlaps []domain.FYOverlap
	for _, ty := range taxYears {
		start, end, ok := dateutil.Intersect(period.Start, period.End, ty.StartDate, ty.EndDate)
		if !ok {
			continue
		}
		overlaps = append(overlaps, domain.FYOverlap{
			FYYear:         ty.FYYear,
			Start:          start,
			End:            end,
			DaysInFY:       dateutil.DaysInclusive(start, end),
			FYTotalDays:    ty.TotalDays(),
			SmallRate:      ty.SmallRate(),
			MainRate:       ty.MainRate(),
			ReliefFraction: ty.ReliefFraction(),
			AnnualLower:    ty.LowerLimit(),
			AnnualUpper:    ty.UpperLimit(),
			AnnualAIA:      ty.AIALimit,
		})
	}
	if len(overlaps) == 0 {
		return nil, &domain.NoApplicableTaxYearError{Start: period.Start, End: period.End}
	}

	sort.Slice(overlaps, func(i, j int) bool {
		return overlaps[i].Start.Before(overlaps[j].Start)
	})

	// The table must cover the period without gaps: inclusive day
	// counts across the overlaps have to add back up to the period.
	total := 0
	for _, o := range overlaps {
		total += o.DaysInFY
	}
	if total != period.Days {
		return nil, &domain.NoApplicableTaxYearError{Start: period.Start, End: period.End}
	}

	return overlaps, nil
}
