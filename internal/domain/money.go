package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value that keeps full decimal precision while it
// is aggregated and exposes a display-rounded form for reporting.
// Statutory totals are rounded to the nearest whole pound with halves
// rounding away from zero; raw values are what get summed so rounding
// error never compounds across slices.
type Amount struct {
	exact decimal.Decimal
}

// NewAmount wraps an exact decimal value.
func NewAmount(exact decimal.Decimal) Amount {
	return Amount{exact: exact}
}

// AmountFromInt is a convenience constructor for whole-pound values.
func AmountFromInt(v int64) Amount {
	return Amount{exact: decimal.NewFromInt(v)}
}

// Exact returns the full-precision value.
func (a Amount) Exact() decimal.Decimal {
	return a.exact
}

// Rounded returns the reporting value: whole currency units, half
// rounding away from zero (so -0.5 reports as -1, not 0).
func (a Amount) Rounded() decimal.Decimal {
	return RoundHalfAwayFromZero(a.exact)
}

// Add returns the sum of two amounts at full precision.
func (a Amount) Add(b Amount) Amount {
	return Amount{exact: a.exact.Add(b.exact)}
}

// AddDecimal adds an exact decimal to the amount.
func (a Amount) AddDecimal(d decimal.Decimal) Amount {
	return Amount{exact: a.exact.Add(d)}
}

// IsZero reports whether the exact value is zero.
func (a Amount) IsZero() bool {
	return a.exact.IsZero()
}

func (a Amount) String() string {
	return a.exact.String()
}

// amountJSON is the serialized shape of an Amount.
type amountJSON struct {
	Exact   decimal.Decimal `json:"exact" yaml:"exact"`
	Rounded decimal.Decimal `json:"rounded" yaml:"rounded"`
}

// MarshalJSON emits both the exact and the rounded representation.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(amountJSON{Exact: a.exact, Rounded: a.Rounded()})
}

// UnmarshalJSON restores the exact value; the rounded form is derived.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var aj amountJSON
	if err := json.Unmarshal(data, &aj); err != nil {
		return err
	}
	a.exact = aj.Exact
	return nil
}

// MarshalYAML mirrors the JSON shape for YAML reports.
func (a Amount) MarshalYAML() (interface{}, error) {
	return amountJSON{Exact: a.exact, Rounded: a.Rounded()}, nil
}

// RoundHalfAwayFromZero rounds to whole currency units with ties going
// away from zero. decimal.Round rounds half away from zero already;
// this wrapper names the statutory convention at call sites.
func RoundHalfAwayFromZero(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
