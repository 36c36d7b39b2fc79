// Package mapper translates the engine's canonical result into the
// shapes the filing surfaces want: CT600 form boxes, a tax computation
// schedule, and financial statement lines. Mappers are stateless
// relabelings; they never recompute a tax amount.
package mapper

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/openfiling/ctcalc/internal/domain"
)

// CT600Return is the subset of CT600 boxes this tool populates,
// derived entirely from one engine run.
type CT600Return struct {
	PeriodStart string `json:"box_30"`
	PeriodEnd   string `json:"box_35"`

	Turnover                  decimal.Decimal `json:"box_145"`
	TradingProfits            decimal.Decimal `json:"box_155"`
	TradingLossesBFUsed       decimal.Decimal `json:"box_160"`
	NonTradingLoanProfits     decimal.Decimal `json:"box_170"`
	PropertyBusinessIncome    decimal.Decimal `json:"box_190"`
	ChargeableGains           decimal.Decimal `json:"box_210"`
	ProfitsBeforeDeductions   decimal.Decimal `json:"box_235"`
	PropertyLossesUsed        decimal.Decimal `json:"box_250"`
	ProfitsBeforeDonations    decimal.Decimal `json:"box_300"`
	ProfitsChargeable         decimal.Decimal `json:"box_315"`
	AssociatedCompanies       int             `json:"box_326"`
	ExemptDistributions       decimal.Decimal `json:"box_620"`
	AnnualInvestmentAllowance decimal.Decimal `json:"box_690"`

	FinancialYears []CT600FinancialYear `json:"financial_years"`

	CorporationTax           decimal.Decimal `json:"box_430"`
	MarginalRelief           decimal.Decimal `json:"box_435"`
	CorporationTaxNet        decimal.Decimal `json:"box_440"`
	NetCorporationTaxPayable decimal.Decimal `json:"box_475"`
}

// CT600FinancialYear is one financial-year block of the form (boxes
// 330-345 for the first year, 380-395 for the second), one per
// calculation slice.
type CT600FinancialYear struct {
	Year   int             `json:"year"`
	Profit decimal.Decimal `json:"profit"`
	Rate   decimal.Decimal `json:"rate"`
	Tax    decimal.Decimal `json:"tax"`
}

// MapCT600 relabels a run into CT600 box values. All monetary boxes
// use the rounded reporting figures.
func MapCT600(run *domain.RunResult) *CT600Return {
	n, res := run.Normalized, run.Result

	ret := &CT600Return{
		PeriodStart: n.APStart.Format("2006-01-02"),
		PeriodEnd:   n.APEnd.Format("2006-01-02"),

		Turnover:               domain.RoundHalfAwayFromZero(n.Turnover),
		TradingProfits:         res.Computation.TaxableTradingProfit.Rounded(),
		TradingLossesBFUsed:    res.Computation.TradingLossUsed.Rounded(),
		NonTradingLoanProfits:  domain.RoundHalfAwayFromZero(n.InterestReceived),
		PropertyBusinessIncome: res.Property.PropertyBusinessIncomeForCT600.Rounded(),
		ChargeableGains:        domain.RoundHalfAwayFromZero(decimal.Max(n.ChargeableGains, decimal.Zero)),

		ProfitsBeforeDeductions: res.Computation.TaxableTotalProfits.Rounded().
			Add(res.Property.PropertyLossUsed.Rounded()),
		PropertyLossesUsed:     res.Property.PropertyLossUsed.Rounded(),
		ProfitsBeforeDonations: res.Computation.TaxableTotalProfits.Rounded(),
		ProfitsChargeable:      res.Computation.TaxableTotalProfits.Rounded(),

		AssociatedCompanies:       n.AssociatedCompanies,
		ExemptDistributions:       domain.RoundHalfAwayFromZero(n.DividendsReceived),
		AnnualInvestmentAllowance: domain.RoundHalfAwayFromZero(res.Metadata.AIA.TotalClaimed()),

		CorporationTax:           res.Tax.CorporationTaxCharge.Rounded().Add(res.Tax.MarginalRelief.Rounded()),
		MarginalRelief:           res.Tax.MarginalRelief.Rounded(),
		CorporationTaxNet:        res.Tax.CorporationTaxCharge.Rounded(),
		NetCorporationTaxPayable: res.Tax.TotalTaxChargeable.Rounded(),
	}

	for _, s := range res.Slices {
		ret.FinancialYears = append(ret.FinancialYears, CT600FinancialYear{
			Year:   s.FYYears[0],
			Profit: s.TaxableProfit.Rounded(),
			Rate:   s.MainRate,
			Tax:    s.CTCharge.Rounded(),
		})
	}

	return ret
}

// BoxValues flattens the return into box-number keyed strings for
// form-filling front ends.
func (r *CT600Return) BoxValues() map[string]string {
	boxes := map[string]string{
		"30":  r.PeriodStart,
		"35":  r.PeriodEnd,
		"145": r.Turnover.String(),
		"155": r.TradingProfits.String(),
		"160": r.TradingLossesBFUsed.String(),
		"170": r.NonTradingLoanProfits.String(),
		"190": r.PropertyBusinessIncome.String(),
		"210": r.ChargeableGains.String(),
		"235": r.ProfitsBeforeDeductions.String(),
		"250": r.PropertyLossesUsed.String(),
		"300": r.ProfitsBeforeDonations.String(),
		"315": r.ProfitsChargeable.String(),
		"326": strconv.Itoa(r.AssociatedCompanies),
		"620": r.ExemptDistributions.String(),
		"690": r.AnnualInvestmentAllowance.String(),
		"430": r.CorporationTax.String(),
		"435": r.MarginalRelief.String(),
		"440": r.CorporationTaxNet.String(),
		"475": r.NetCorporationTaxPayable.String(),
	}

	// The form carries two financial-year blocks; a collapsed single
	// slice fills only the first.
	fyBoxes := [][4]string{{"330", "335", "340", "345"}, {"380", "385", "390", "395"}}
	for i, fy := range r.FinancialYears {
		if i >= len(fyBoxes) {
			break
		}
		boxes[fyBoxes[i][0]] = strconv.Itoa(fy.Year)
		boxes[fyBoxes[i][1]] = fy.Profit.String()
		boxes[fyBoxes[i][2]] = fy.Rate.String()
		boxes[fyBoxes[i][3]] = fy.Tax.String()
	}
	return boxes
}

// BoxNumbers lists the populated box numbers in ascending order.
func (r *CT600Return) BoxNumbers() []string {
	values := r.BoxValues()
	numbers := make([]string, 0, len(values))
	for box := range values {
		numbers = append(numbers, box)
	}
	sort.Slice(numbers, func(i, j int) bool {
		a, _ := strconv.Atoi(numbers[i])
		b, _ := strconv.Atoi(numbers[j])
		return a < b
	})
	return numbers
}
