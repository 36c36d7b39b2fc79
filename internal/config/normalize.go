package config

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openfiling/ctcalc/internal/domain"
	"github.com/openfiling/ctcalc/pkg/dateutil"
)

// The raw input record accepts one canonical name per logical field
// plus the legacy aliases older front-ends used. Aliasing is resolved
// here, once, from this table; the canonical name always wins when
// both are present, and exactly one value survives per field.
var fieldAliases = map[string][]string{
	"accountingPeriodStart":      {"apStart", "periodStart", "startDate"},
	"accountingPeriodEnd":        {"apEnd", "periodEnd", "endDate"},
	"associatedCompanies":        {"associates", "associatedCompanyCount"},
	"turnover":                   {"sales", "revenue"},
	"grantIncome":                {"grants", "governmentGrants"},
	"balancingCharges":           {"balancingCharge"},
	"costOfSales":                {"cogs", "directCosts"},
	"staffCosts":                 {"wages", "salaries"},
	"adminExpenses":              {"operatingCosts", "overheads"},
	"interestPaid":               {"interestPayable", "bankInterestPaid"},
	"otherExpenses":              {"sundryExpenses", "otherCosts"},
	"depreciation":               {"depreciationCharge"},
	"disallowableExpenses":       {"addBacks", "disallowables"},
	"interestReceived":           {"bankInterestReceived", "interestIncome"},
	"propertyIncome":             {"rentalIncome", "ukPropertyIncome"},
	"propertyExpenses":           {"rentalExpenses", "ukPropertyExpenses"},
	"chargeableGains":            {"capitalGains", "gains"},
	"dividendsReceived":          {"distributionsReceived", "frankedInvestmentIncome"},
	"tradingLossBroughtForward":  {"lossesBroughtForward", "tradingLossesBF"},
	"propertyLossBroughtForward": {"propertyLossesBF"},
	"tradingLossToUse":           {"lossReliefRequested", "tradingLossRelief"},
	"propertyLossToUse":          {"propertyLossRelief"},
	"aiaTradeAdditions":          {"aiaAdditions", "capitalAdditions"},
	"aiaNonTradeAdditions":       {"aiaOtherAdditions"},
}

// AliasTable returns the legacy-to-canonical crosswalk, sorted by
// legacy name, for documentation output.
func AliasTable() [][2]string {
	var rows [][2]string
	for canonical, aliases := range fieldAliases {
		for _, alias := range aliases {
			rows = append(rows, [2]string{alias, canonical})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	return rows
}

// resolver reads fields out of a raw record through the alias table.
type resolver struct {
	raw domain.RawInput
}

// lookup finds the value for a canonical field, falling back through
// its aliases in declared order. Legacy names take effect only when
// the canonical name is absent.
func (r resolver) lookup(canonical string) (interface{}, bool) {
	if v, ok := r.raw[canonical]; ok {
		return v, true
	}
	for _, alias := range fieldAliases[canonical] {
		if v, ok := r.raw[alias]; ok {
			return v, true
		}
	}
	return nil, false
}

func (r resolver) date(canonical string) (time.Time, error) {
	v, ok := r.lookup(canonical)
	if !ok {
		return time.Time{}, &domain.InputError{Field: canonical, Reason: "required"}
	}
	switch t := v.(type) {
	case time.Time:
		return dateutil.Normalize(t), nil
	case string:
		parsed, err := time.Parse("2006-01-02", strings.TrimSpace(t))
		if err != nil {
			return time.Time{}, &domain.InputError{Field: canonical, Reason: fmt.Sprintf("unparseable date %q (want YYYY-MM-DD)", t)}
		}
		return dateutil.Normalize(parsed), nil
	default:
		return time.Time{}, &domain.InputError{Field: canonical, Reason: fmt.Sprintf("unsupported date value %v", v)}
	}
}

// money coerces a raw value to a decimal, defaulting absent fields to
// zero. Non-finite floats are rejected rather than silently truncated.
func (r resolver) money(canonical string) (decimal.Decimal, error) {
	v, ok := r.lookup(canonical)
	if !ok || v == nil {
		return decimal.Zero, nil
	}
	return coerceDecimal(canonical, v)
}

// optionalMoney distinguishes "absent" (nil: use the maximum
// available) from an explicit cap, including an explicit zero.
func (r resolver) optionalMoney(canonical string) (*decimal.Decimal, error) {
	v, ok := r.lookup(canonical)
	if !ok || v == nil {
		return nil, nil
	}
	d, err := coerceDecimal(canonical, v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r resolver) count(canonical string) (int, error) {
	v, ok := r.lookup(canonical)
	if !ok || v == nil {
		return 0, nil
	}
	d, err := coerceDecimal(canonical, v)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, &domain.InputError{Field: canonical, Reason: "must be a whole number"}
	}
	return int(d.IntPart()), nil
}

func coerceDecimal(field string, v interface{}) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return decimal.Decimal{}, &domain.InputError{Field: field, Reason: "amount out of range"}
		}
		return decimal.New(int64(n), 0), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Decimal{}, &domain.InputError{Field: field, Reason: "must be a finite number"}
		}
		return decimal.NewFromFloat(n), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Decimal{}, &domain.InputError{Field: field, Reason: fmt.Sprintf("unparseable amount %q", n)}
		}
		return d, nil
	default:
		return decimal.Decimal{}, &domain.InputError{Field: field, Reason: fmt.Sprintf("unsupported amount value %v", v)}
	}
}

// NormalizeInput validates and canonicalizes a raw record into the
// strongly typed input the engine runs from. It is the only place
// aliasing, coercion and input validation happen.
func NormalizeInput(raw domain.RawInput) (*domain.NormalizedInput, error) {
	r := resolver{raw: raw}
	n := &domain.NormalizedInput{}

	var err error
	if n.APStart, err = r.date("accountingPeriodStart"); err != nil {
		return nil, err
	}
	if n.APEnd, err = r.date("accountingPeriodEnd"); err != nil {
		return nil, err
	}
	if n.APEnd.Before(n.APStart) {
		return nil, &domain.InvalidPeriodError{Start: n.APStart, End: n.APEnd}
	}
	n.APDays = dateutil.DaysInclusive(n.APStart, n.APEnd)

	if n.AssociatedCompanies, err = r.count("associatedCompanies"); err != nil {
		return nil, err
	}
	if n.AssociatedCompanies < 0 {
		return nil, &domain.InputError{Field: "associatedCompanies", Reason: "cannot be negative"}
	}

	nonNegative := []struct {
		name string
		dst  *decimal.Decimal
	}{
		{"turnover", &n.Turnover},
		{"grantIncome", &n.GrantIncome},
		{"balancingCharges", &n.BalancingCharges},
		{"costOfSales", &n.CostOfSales},
		{"staffCosts", &n.StaffCosts},
		{"adminExpenses", &n.AdminExpenses},
		{"interestPaid", &n.InterestPaid},
		{"otherExpenses", &n.OtherExpenses},
		{"depreciation", &n.Depreciation},
		{"disallowableExpenses", &n.DisallowableExpenses},
		{"interestReceived", &n.InterestReceived},
		{"propertyIncome", &n.PropertyIncome},
		{"propertyExpenses", &n.PropertyExpenses},
		{"dividendsReceived", &n.DividendsReceived},
		{"tradingLossBroughtForward", &n.TradingLossBroughtForward},
		{"propertyLossBroughtForward", &n.PropertyLossBroughtForward},
		{"aiaTradeAdditions", &n.AIATradeAdditions},
		{"aiaNonTradeAdditions", &n.AIANonTradeAdditions},
	}
	for _, field := range nonNegative {
		if *field.dst, err = r.money(field.name); err != nil {
			return nil, err
		}
		if field.dst.IsNegative() {
			return nil, &domain.InputError{Field: field.name, Reason: "cannot be negative"}
		}
	}

	// Chargeable gains are the one explicitly signed money field: a
	// negative value is a capital loss and is handled downstream.
	if n.ChargeableGains, err = r.money("chargeableGains"); err != nil {
		return nil, err
	}

	if n.TradingLossToUse, err = r.optionalMoney("tradingLossToUse"); err != nil {
		return nil, err
	}
	if n.PropertyLossToUse, err = r.optionalMoney("propertyLossToUse"); err != nil {
		return nil, err
	}
	if n.TradingLossToUse != nil && n.TradingLossToUse.IsNegative() {
		return nil, &domain.InputError{Field: "tradingLossToUse", Reason: "cannot be negative"}
	}
	if n.PropertyLossToUse != nil && n.PropertyLossToUse.IsNegative() {
		return nil, &domain.InputError{Field: "propertyLossToUse", Reason: "cannot be negative"}
	}

	return n, nil
}
