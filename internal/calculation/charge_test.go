package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/openfiling/ctcalc/internal/domain"
)

func fy2024Slice(taxable, augmented int64) domain.SliceResult {
	return domain.SliceResult{
		FYYears:         []int{2024},
		Days:            365,
		TaxableProfit:   domain.AmountFromInt(taxable),
		AugmentedProfit: domain.AmountFromInt(augmented),
		LowerLimit:      domain.AmountFromInt(50000),
		UpperLimit:      domain.AmountFromInt(250000),
		SmallRate:       decimal.NewFromFloat(0.19),
		MainRate:        decimal.NewFromFloat(0.25),
		ReliefFraction:  decimal.RequireFromString("0.015"),
	}
}

func TestChargeSliceBands(t *testing.T) {
	tests := []struct {
		name       string
		taxable    int64
		augmented  int64
		wantBand   domain.RateBand
		wantCharge string
		wantRelief string
	}{
		{
			name:       "small profits band",
			taxable:    25000,
			augmented:  25000,
			wantBand:   domain.BandSmallProfits,
			wantCharge: "4750",
			wantRelief: "0",
		},
		{
			name:       "at lower limit stays small",
			taxable:    50000,
			augmented:  50000,
			wantBand:   domain.BandSmallProfits,
			wantCharge: "9500",
			wantRelief: "0",
		},
		{
			name:       "marginal relief band",
			taxable:    100000,
			augmented:  100000,
			wantBand:   domain.BandMarginalRelief,
			wantCharge: "22750",
			wantRelief: "2250",
		},
		{
			name:       "at upper limit uses main rate",
			taxable:    250000,
			augmented:  250000,
			wantBand:   domain.BandMainRate,
			wantCharge: "62500",
			wantRelief: "0",
		},
		{
			name:       "main rate band",
			taxable:    290000,
			augmented:  290000,
			wantBand:   domain.BandMainRate,
			wantCharge: "72500",
			wantRelief: "0",
		},
		{
			name:       "zero profit",
			taxable:    0,
			augmented:  0,
			wantBand:   domain.BandSmallProfits,
			wantCharge: "0",
			wantRelief: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fy2024Slice(tt.taxable, tt.augmented)
			ChargeSlice(&s)

			assert.Equal(t, tt.wantBand, s.Band)
			assert.True(t, s.CTCharge.Exact().Equal(decimal.RequireFromString(tt.wantCharge)),
				"charge %s", s.CTCharge.Exact())
			assert.True(t, s.MarginalRelief.Exact().Equal(decimal.RequireFromString(tt.wantRelief)),
				"relief %s", s.MarginalRelief.Exact())
		})
	}
}

func TestChargeSliceDividendsReduceRelief(t *testing.T) {
	// Dividends raise augmented profit but not taxable profit, so they
	// shrink the relief through both the band distance and the
	// taxable/augmented ratio.
	withDividends := fy2024Slice(100000, 120000)
	ChargeSlice(&withDividends)

	without := fy2024Slice(100000, 100000)
	ChargeSlice(&without)

	assert.Equal(t, domain.BandMarginalRelief, withDividends.Band)
	assert.True(t, withDividends.MarginalRelief.Exact().LessThan(without.MarginalRelief.Exact()))
	assert.True(t, withDividends.CTCharge.Exact().GreaterThan(without.CTCharge.Exact()))

	// 0.015 x (250000 - 120000) x (100000 / 120000), about 1625.
	want := decimal.RequireFromString("0.015").
		Mul(decimal.NewFromInt(130000)).
		Mul(decimal.NewFromInt(100000).Div(decimal.NewFromInt(120000)))
	assert.True(t, withDividends.MarginalRelief.Exact().Equal(want),
		"relief %s", withDividends.MarginalRelief.Exact())
	assert.True(t, withDividends.MarginalRelief.Rounded().Equal(decimal.NewFromInt(1625)))
}

func TestChargeSliceDividendsCanPushIntoMainRate(t *testing.T) {
	s := fy2024Slice(200000, 260000)
	ChargeSlice(&s)

	assert.Equal(t, domain.BandMainRate, s.Band)
	assert.True(t, s.CTCharge.Exact().Equal(decimal.NewFromInt(50000)))
}

func TestChargeSliceFlatRegimeHasNoRelief(t *testing.T) {
	// A year whose small and main rates coincide never produces relief,
	// whichever band the thresholds put it in.
	s := domain.SliceResult{
		FYYears:         []int{2020},
		Days:            365,
		TaxableProfit:   domain.AmountFromInt(100000),
		AugmentedProfit: domain.AmountFromInt(100000),
		LowerLimit:      domain.AmountFromInt(50000),
		UpperLimit:      domain.AmountFromInt(250000),
		SmallRate:       decimal.NewFromFloat(0.19),
		MainRate:        decimal.NewFromFloat(0.19),
		ReliefFraction:  decimal.Zero,
	}
	ChargeSlice(&s)

	assert.True(t, s.MarginalRelief.Exact().IsZero())
	assert.True(t, s.CTCharge.Exact().Equal(decimal.NewFromInt(19000)))
}
