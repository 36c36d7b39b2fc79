package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestLossPoolRelieve(t *testing.T) {
	tests := []struct {
		name        string
		broughtFwd  int64
		requested   *int64
		profitBase  int64
		currentLoss int64
		wantUsed    int64
		wantCarried int64
	}{
		{
			name:        "pool smaller than profit",
			broughtFwd:  30000,
			profitBase:  100000,
			wantUsed:    30000,
			wantCarried: 0,
		},
		{
			name:        "profit smaller than pool",
			broughtFwd:  30000,
			profitBase:  25000,
			wantUsed:    25000,
			wantCarried: 5000,
		},
		{
			name:        "requested cap binds",
			broughtFwd:  30000,
			requested:   ptrInt(10000),
			profitBase:  25000,
			wantUsed:    10000,
			wantCarried: 20000,
		},
		{
			name:        "zero profit uses nothing",
			broughtFwd:  30000,
			profitBase:  0,
			wantUsed:    0,
			wantCarried: 30000,
		},
		{
			name:        "negative profit base treated as zero",
			broughtFwd:  30000,
			profitBase:  -5000,
			wantUsed:    0,
			wantCarried: 30000,
		},
		{
			name:        "current loss joins carry forward",
			broughtFwd:  10000,
			profitBase:  4000,
			currentLoss: 7000,
			wantUsed:    4000,
			wantCarried: 13000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requested *decimal.Decimal
			if tt.requested != nil {
				r := d(*tt.requested)
				requested = &r
			}
			pool := newLossPool(d(tt.broughtFwd), requested)

			rec := pool.relieve(d(tt.profitBase), d(tt.currentLoss))

			assert.True(t, rec.BroughtForward.Equal(d(tt.broughtFwd)), "brought forward %s", rec.BroughtForward)
			assert.True(t, rec.Used.Equal(d(tt.wantUsed)), "used %s", rec.Used)
			assert.True(t, rec.CarriedForward.Equal(d(tt.wantCarried)), "carried forward %s", rec.CarriedForward)
			assert.True(t, pool.carriedForward().Equal(d(tt.wantCarried)))
		})
	}
}

func TestLossPoolSequentialPeriods(t *testing.T) {
	// The second period opens with exactly what the first left behind.
	pool := newLossPool(d(30000), nil)

	first := pool.relieve(d(12000), decimal.Zero)
	assert.True(t, first.Used.Equal(d(12000)))
	assert.True(t, first.CarriedForward.Equal(d(18000)))

	second := pool.relieve(d(50000), decimal.Zero)
	assert.True(t, second.BroughtForward.Equal(d(18000)))
	assert.True(t, second.Used.Equal(d(18000)))
	assert.True(t, second.CarriedForward.Equal(d(0)))
}

func TestLossPoolRequestedCapSpansPeriods(t *testing.T) {
	// A usage cap decrements as it is consumed, independently of pool
	// depletion, so the second period only gets the cap's remainder.
	requested := d(15000)
	pool := newLossPool(d(40000), &requested)

	first := pool.relieve(d(10000), decimal.Zero)
	assert.True(t, first.Used.Equal(d(10000)))
	assert.True(t, first.CarriedForward.Equal(d(30000)))

	second := pool.relieve(d(20000), decimal.Zero)
	assert.True(t, second.Used.Equal(d(5000)), "used %s", second.Used)
	assert.True(t, second.CarriedForward.Equal(d(25000)))
}

func TestLossPoolNegativeInputsClamped(t *testing.T) {
	neg := d(-500)
	pool := newLossPool(d(-1000), &neg)

	rec := pool.relieve(d(10000), d(-2000))
	assert.True(t, rec.Used.Equal(d(0)))
	assert.True(t, rec.CarriedForward.Equal(d(0)))
}

func ptrInt(v int64) *int64 { return &v }
