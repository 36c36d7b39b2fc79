package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawInput is the flat key-value record accepted at the engine
// boundary. Keys may use canonical field names or documented legacy
// aliases; the normalizer resolves exactly one value per logical field
// before anything else runs. Values are whatever the decoder produced
// (strings, ints, floats, dates) and are coerced during normalization.
type RawInput map[string]interface{}

// NormalizedInput is the strongly typed record every computation runs
// from. All monetary fields are non-negative except ChargeableGains,
// which is explicitly signed (a negative value is an unrelieved
// capital loss and is ring-fenced by the classifier). Nil usage
// requests mean "use the maximum available".
type NormalizedInput struct {
	APStart time.Time `json:"ap_start"`
	APEnd   time.Time `json:"ap_end"`
	APDays  int       `json:"ap_days"`

	AssociatedCompanies int `json:"associated_companies"`

	// Trading income and expenditure.
	Turnover         decimal.Decimal `json:"turnover"`
	GrantIncome      decimal.Decimal `json:"grant_income"`
	BalancingCharges decimal.Decimal `json:"balancing_charges"`
	CostOfSales      decimal.Decimal `json:"cost_of_sales"`
	StaffCosts       decimal.Decimal `json:"staff_costs"`
	AdminExpenses    decimal.Decimal `json:"admin_expenses"`
	InterestPaid     decimal.Decimal `json:"interest_paid"`
	OtherExpenses    decimal.Decimal `json:"other_expenses"`

	// Tax add-backs.
	Depreciation          decimal.Decimal `json:"depreciation"`
	DisallowableExpenses  decimal.Decimal `json:"disallowable_expenses"`

	// Non-trading streams.
	InterestReceived  decimal.Decimal `json:"interest_received"`
	PropertyIncome    decimal.Decimal `json:"property_income"`
	PropertyExpenses  decimal.Decimal `json:"property_expenses"`
	ChargeableGains   decimal.Decimal `json:"chargeable_gains"`
	DividendsReceived decimal.Decimal `json:"dividends_received"`

	// Loss relief.
	TradingLossBroughtForward  decimal.Decimal  `json:"trading_loss_brought_forward"`
	PropertyLossBroughtForward decimal.Decimal  `json:"property_loss_brought_forward"`
	TradingLossToUse           *decimal.Decimal `json:"trading_loss_to_use,omitempty"`
	PropertyLossToUse          *decimal.Decimal `json:"property_loss_to_use,omitempty"`

	// Annual investment allowance additions.
	AIATradeAdditions    decimal.Decimal `json:"aia_trade_additions"`
	AIANonTradeAdditions decimal.Decimal `json:"aia_non_trade_additions"`
}

// TotalExpenses sums the deductible profit-and-loss expense lines.
func (n *NormalizedInput) TotalExpenses() decimal.Decimal {
	return n.CostOfSales.
		Add(n.StaffCosts).
		Add(n.AdminExpenses).
		Add(n.InterestPaid).
		Add(n.OtherExpenses)
}

// PropertyProfitBeforeLoss is the signed property business result for
// the whole accounting period.
func (n *NormalizedInput) PropertyProfitBeforeLoss() decimal.Decimal {
	return n.PropertyIncome.Sub(n.PropertyExpenses)
}

// AccountsProfitBeforeTax is the accounting profit before tax for the
// financial statements: all income streams, signed, including
// dividends, less all expenses including depreciation.
func (n *NormalizedInput) AccountsProfitBeforeTax() decimal.Decimal {
	income := n.Turnover.
		Add(n.GrantIncome).
		Add(n.InterestReceived).
		Add(n.PropertyProfitBeforeLoss()).
		Add(n.ChargeableGains).
		Add(n.DividendsReceived)
	return income.Sub(n.TotalExpenses()).Sub(n.Depreciation)
}
