package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is a sub-range of the accounting period produced by the
// splitter. An accounting period yields at most two periods; only the
// second can be short.
type Period struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Days          int       `json:"days"`
	IsShortPeriod bool      `json:"is_short_period"`
}

// FYOverlap is the intersection of one period with one financial year,
// carrying every figure derived for that intersection so nothing needs
// correlating across parallel arrays later.
type FYOverlap struct {
	FYYear      int       `json:"fy_year"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	DaysInFY    int       `json:"days_in_fy"`
	FYTotalDays int       `json:"fy_total_days"`

	// Apportioned figures for this overlap.
	LowerLimit decimal.Decimal `json:"lower_limit"`
	UpperLimit decimal.Decimal `json:"upper_limit"`
	AIACap     decimal.Decimal `json:"aia_cap"`

	TaxableProfit   decimal.Decimal `json:"taxable_profit"`
	AugmentedProfit decimal.Decimal `json:"augmented_profit"`

	// Rate signature, used by the regime collapser. The Annual*
	// fields are the year's unapportioned figures.
	SmallRate      decimal.Decimal `json:"small_rate"`
	MainRate       decimal.Decimal `json:"main_rate"`
	ReliefFraction decimal.Decimal `json:"relief_fraction"`
	AnnualLower    decimal.Decimal `json:"annual_lower"`
	AnnualUpper    decimal.Decimal `json:"annual_upper"`
	AnnualAIA      decimal.Decimal `json:"annual_aia"`
}

// RateBand identifies which of the three charge bands a slice fell in.
type RateBand string

const (
	BandSmallProfits   RateBand = "small_profits"
	BandMarginalRelief RateBand = "marginal_relief"
	BandMainRate       RateBand = "main_rate"
)

// SliceResult is one collapsed calculation slice: one or more
// contiguous FY overlaps with an identical rate signature, charged
// once. Charge and relief carry both exact and rounded forms.
type SliceResult struct {
	FYYears []int     `json:"fy_years"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Days    int       `json:"days"`

	TaxableProfit   Amount `json:"taxable_profit"`
	AugmentedProfit Amount `json:"augmented_profit"`
	LowerLimit      Amount `json:"lower_limit"`
	UpperLimit      Amount `json:"upper_limit"`
	AIACap          Amount `json:"aia_cap"`

	SmallRate      decimal.Decimal `json:"small_rate"`
	MainRate       decimal.Decimal `json:"main_rate"`
	ReliefFraction decimal.Decimal `json:"relief_fraction"`

	Band           RateBand `json:"band"`
	CTCharge       Amount   `json:"ct_charge"`
	MarginalRelief Amount   `json:"marginal_relief"`
}

// LossPool is the audit view of one loss pool for one period: what was
// available going in, what was relieved, and what carries forward.
type LossPool struct {
	BroughtForward decimal.Decimal `json:"brought_forward"`
	Available      decimal.Decimal `json:"available"`
	Used           decimal.Decimal `json:"used"`
	CarriedForward decimal.Decimal `json:"carried_forward"`
}

// AIAAllocation records how the shared annual investment allowance cap
// was split between the trading and non-trading claims of one period.
type AIAAllocation struct {
	Cap               decimal.Decimal `json:"cap"`
	TradeRequested    decimal.Decimal `json:"trade_requested"`
	NonTradeRequested decimal.Decimal `json:"non_trade_requested"`
	TradeClaimed      decimal.Decimal `json:"trade_claimed"`
	NonTradeClaimed   decimal.Decimal `json:"non_trade_claimed"`
}

// TotalClaimed is the combined AIA actually granted.
func (a AIAAllocation) TotalClaimed() decimal.Decimal {
	return a.TradeClaimed.Add(a.NonTradeClaimed)
}

// PeriodResult is the full audit trail for one period of the
// accounting period.
type PeriodResult struct {
	Period Period `json:"period"`

	TradingProfitBeforeAIA    decimal.Decimal `json:"trading_profit_before_aia"`
	NonTradingProfitBeforeAIA decimal.Decimal `json:"non_trading_profit_before_aia"`
	TradingProfitAfterAIA     decimal.Decimal `json:"trading_profit_after_aia"`
	NonTradingProfitAfterAIA  decimal.Decimal `json:"non_trading_profit_after_aia"`

	AIA AIAAllocation `json:"aia"`

	TradingLoss  LossPool `json:"trading_loss"`
	PropertyLoss LossPool `json:"property_loss"`

	// Unrelieved capital loss arising in this period. Ring-fenced: it
	// never offsets other streams and is not carried forward.
	CapitalLossUnrelieved decimal.Decimal `json:"capital_loss_unrelieved"`

	TaxableTotalProfits decimal.Decimal `json:"taxable_total_profits"`
	AugmentedProfits    decimal.Decimal `json:"augmented_profits"`
	DividendIncome      decimal.Decimal `json:"dividend_income"`

	Slices []SliceResult `json:"slices"`

	CTCharge       Amount `json:"ct_charge"`
	MarginalRelief Amount `json:"marginal_relief"`
}

// AccountsSummary carries the figures the financial statement mapper
// reads.
type AccountsSummary struct {
	Turnover        Amount `json:"turnover"`
	ProfitBeforeTax Amount `json:"profit_before_tax"`
	ProfitAfterTax  Amount `json:"profit_after_tax"`
}

// ComputationSummary carries the tax computation schedule figures.
type ComputationSummary struct {
	TaxableTradingProfit      Amount `json:"taxable_trading_profit"`
	TaxableNonTradingProfits  Amount `json:"taxable_non_trading_profits"`
	TaxableTotalProfits       Amount `json:"taxable_total_profits"`
	AugmentedProfits          Amount `json:"augmented_profits"`
	CapitalAllowances         Amount `json:"capital_allowances"`
	TradingLossUsed           Amount `json:"trading_loss_used"`
	TradingLossCarriedForward Amount `json:"trading_loss_carried_forward"`
}

// PropertySummary carries the property business figures.
type PropertySummary struct {
	PropertyLossUsed               Amount `json:"property_loss_used"`
	PropertyLossCF                 Amount `json:"property_loss_cf"`
	PropertyBusinessIncomeForCT600 Amount `json:"property_business_income_for_ct600"`
}

// TaxSummary carries the liability figures.
type TaxSummary struct {
	CorporationTaxCharge Amount          `json:"corporation_tax_charge"`
	MarginalRelief       Amount          `json:"marginal_relief"`
	TotalTaxChargeable   Amount          `json:"total_tax_chargeable"`
	EffectiveRate        decimal.Decimal `json:"effective_rate"`
}

// ResultMetadata is the loss-pool and AIA audit detail across the
// whole accounting period.
type ResultMetadata struct {
	TradingLossPool       LossPool        `json:"trading_loss_pool"`
	PropertyLossPool      LossPool        `json:"property_loss_pool"`
	CapitalLossUnrelieved decimal.Decimal `json:"capital_loss_unrelieved"`
	AIA                   AIAAllocation   `json:"aia"`
	AccountingPeriodSplit bool            `json:"accounting_period_split"`
}

// CanonicalResult is the engine's sole output and the mappers' sole
// input. It is a value snapshot: once built it holds no live reference
// to engine state, and mappers only relabel what is here.
type CanonicalResult struct {
	Accounts    AccountsSummary    `json:"accounts"`
	Computation ComputationSummary `json:"computation"`
	Property    PropertySummary    `json:"property"`
	Tax         TaxSummary         `json:"tax"`
	Periods     []PeriodResult     `json:"periods"`
	Slices      []SliceResult      `json:"slices"`
	Metadata    ResultMetadata     `json:"metadata"`
}

// RunResult pairs the normalized input with the canonical result.
type RunResult struct {
	Normalized *NormalizedInput `json:"normalized_input"`
	Result     *CanonicalResult `json:"canonical_result"`
}
