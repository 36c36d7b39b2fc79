package mapper

import (
	"github.com/shopspring/decimal"

	"github.com/openfiling/ctcalc/internal/domain"
)

// AccountsStatement is the profit and loss presentation of a run for
// the financial statements. Like every mapper output it is built from
// the engine's snapshot; the tax line comes straight from the
// canonical result.
type AccountsStatement struct {
	Turnover            decimal.Decimal `json:"turnover"`
	CostOfSales         decimal.Decimal `json:"cost_of_sales"`
	GrossProfit         decimal.Decimal `json:"gross_profit"`
	OtherIncome         decimal.Decimal `json:"other_income"`
	OperatingExpenses   decimal.Decimal `json:"operating_expenses"`
	Depreciation        decimal.Decimal `json:"depreciation"`
	OperatingProfit     decimal.Decimal `json:"operating_profit"`
	InterestReceivable  decimal.Decimal `json:"interest_receivable"`
	InterestPayable     decimal.Decimal `json:"interest_payable"`
	ProfitBeforeTax     decimal.Decimal `json:"profit_before_tax"`
	TaxOnProfit         decimal.Decimal `json:"tax_on_profit"`
	ProfitAfterTax      decimal.Decimal `json:"profit_after_tax"`
}

// MapAccounts relabels a run into profit and loss lines.
func MapAccounts(run *domain.RunResult) *AccountsStatement {
	n, res := run.Normalized, run.Result

	grossProfit := n.Turnover.Sub(n.CostOfSales)
	otherIncome := n.GrantIncome.
		Add(n.PropertyProfitBeforeLoss()).
		Add(n.ChargeableGains).
		Add(n.DividendsReceived)
	operatingExpenses := n.StaffCosts.Add(n.AdminExpenses).Add(n.OtherExpenses)
	operatingProfit := grossProfit.Add(otherIncome).Sub(operatingExpenses).Sub(n.Depreciation)

	return &AccountsStatement{
		Turnover:           domain.RoundHalfAwayFromZero(n.Turnover),
		CostOfSales:        domain.RoundHalfAwayFromZero(n.CostOfSales),
		GrossProfit:        domain.RoundHalfAwayFromZero(grossProfit),
		OtherIncome:        domain.RoundHalfAwayFromZero(otherIncome),
		OperatingExpenses:  domain.RoundHalfAwayFromZero(operatingExpenses),
		Depreciation:       domain.RoundHalfAwayFromZero(n.Depreciation),
		OperatingProfit:    domain.RoundHalfAwayFromZero(operatingProfit),
		InterestReceivable: domain.RoundHalfAwayFromZero(n.InterestReceived),
		InterestPayable:    domain.RoundHalfAwayFromZero(n.InterestPaid),
		ProfitBeforeTax:    res.Accounts.ProfitBeforeTax.Rounded(),
		TaxOnProfit:        res.Tax.TotalTaxChargeable.Rounded(),
		ProfitAfterTax:     res.Accounts.ProfitAfterTax.Rounded(),
	}
}
