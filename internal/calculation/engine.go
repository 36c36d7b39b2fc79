package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openfiling/ctcalc/internal/config"
	"github.com/openfiling/ctcalc/internal/domain"
)

// Engine computes a corporation tax liability from a normalized input
// record and a tax year reference table. A run is a pure function of
// its inputs: the engine holds no cross-call state, never mutates the
// table, and concurrent runs need no coordination.
type Engine struct {
	taxYears []domain.TaxYearDefinition
}

// NewEngine creates an engine over the built-in reference table.
func NewEngine() *Engine {
	return &Engine{taxYears: domain.DefaultTaxYears()}
}

// NewEngineWithTaxYears creates an engine over a caller-supplied
// table. The table is copied and validated; the caller keeps no handle
// into the engine's copy.
func NewEngineWithTaxYears(taxYears []domain.TaxYearDefinition) (*Engine, error) {
	if len(taxYears) == 0 {
		return nil, fmt.Errorf("tax year table is empty")
	}
	table := make([]domain.TaxYearDefinition, len(taxYears))
	copy(table, taxYears)
	for _, ty := range table {
		if err := ty.Validate(); err != nil {
			return nil, fmt.Errorf("invalid tax year table: %w", err)
		}
	}
	return &Engine{taxYears: table}, nil
}

// TaxYears returns a copy of the engine's reference table.
func (e *Engine) TaxYears() []domain.TaxYearDefinition {
	out := make([]domain.TaxYearDefinition, len(e.taxYears))
	copy(out, e.taxYears)
	return out
}

// Run normalizes a raw input record and computes the canonical result.
// This is the single entry point the CLI, the TUI and the mappers sit
// behind.
func (e *Engine) Run(raw domain.RawInput) (*domain.RunResult, error) {
	normalized, err := config.NormalizeInput(raw)
	if err != nil {
		return nil, err
	}
	result, err := e.RunNormalized(normalized)
	if err != nil {
		return nil, err
	}
	return &domain.RunResult{Normalized: normalized, Result: result}, nil
}

// RunNormalized computes the canonical result for an already
// normalized input.
func (e *Engine) RunNormalized(n *domain.NormalizedInput) (*domain.CanonicalResult, error) {
	periods, err := SplitAccountingPeriod(n.APStart, n.APEnd)
	if err != nil {
		return nil, err
	}

	figures := apportionFigures(n, periods)
	tradingPool := newLossPool(n.TradingLossBroughtForward, n.TradingLossToUse)
	propertyPool := newLossPool(n.PropertyLossBroughtForward, n.PropertyLossToUse)

	result := &domain.CanonicalResult{}
	var (
		totalTaxable        decimal.Decimal
		totalDividends      decimal.Decimal
		totalCharge         decimal.Decimal
		totalRelief         decimal.Decimal
		totalAIACap         decimal.Decimal
		totalTradeClaimed   decimal.Decimal
		totalNonTradeClaims decimal.Decimal
		totalTradingProfit  decimal.Decimal
		totalNonTrading     decimal.Decimal
		totalPropertyInc    decimal.Decimal
		totalCapitalLoss    decimal.Decimal
		totalTradingUsed    decimal.Decimal
		totalPropertyUsed   decimal.Decimal
	)

	for i, period := range periods {
		f := figures[i]

		overlaps, err := ResolveFYOverlaps(period, e.taxYears)
		if err != nil {
			return nil, err
		}
		ApportionAllowances(period, overlaps, n.AssociatedCompanies)

		streams := classifyProfits(f)
		aiaCap := PeriodAIACap(overlaps)
		tradeClaim, nonTradeClaim := AllocateSharedCap(f.aiaTradeAdditions, f.aiaNonTradeAdditions, aiaCap)

		// AIA claims are not floored by profit: over-claiming against a
		// small trading result legitimately produces a period loss.
		tradingAfterAIA := streams.tradingBeforeAIA.Sub(tradeClaim)
		nonTradingAfterAIA := streams.nonTradingBeforeAIA.Sub(nonTradeClaim)

		currentTradingLoss := decimal.Max(tradingAfterAIA.Neg(), decimal.Zero)
		tradingAudit := tradingPool.relieve(tradingAfterAIA, currentTradingLoss)
		tradingNet := decimal.Max(tradingAfterAIA, decimal.Zero).Sub(tradingAudit.Used)

		base := tradingNet.Add(nonTradingAfterAIA)
		propertyAudit := propertyPool.relieve(base, streams.currentPropertyLoss)
		taxable := decimal.Max(base.Sub(propertyAudit.Used), decimal.Zero)
		augmented := taxable.Add(f.dividends)

		distributeProfits(overlaps, taxable, augmented, period.Days)
		slices := CollapseRegimes(overlaps)

		periodCharge, periodRelief := decimal.Zero, decimal.Zero
		for j := range slices {
			ChargeSlice(&slices[j])
			periodCharge = periodCharge.Add(slices[j].CTCharge.Exact())
			periodRelief = periodRelief.Add(slices[j].MarginalRelief.Exact())
		}

		pr := domain.PeriodResult{
			Period:                    period,
			TradingProfitBeforeAIA:    streams.tradingBeforeAIA,
			NonTradingProfitBeforeAIA: streams.nonTradingBeforeAIA,
			TradingProfitAfterAIA:     tradingAfterAIA,
			NonTradingProfitAfterAIA:  nonTradingAfterAIA,
			AIA: domain.AIAAllocation{
				Cap:               aiaCap,
				TradeRequested:    f.aiaTradeAdditions,
				NonTradeRequested: f.aiaNonTradeAdditions,
				TradeClaimed:      tradeClaim,
				NonTradeClaimed:   nonTradeClaim,
			},
			TradingLoss:           tradingAudit,
			PropertyLoss:          propertyAudit,
			CapitalLossUnrelieved: streams.capitalLossUnrelieved,
			TaxableTotalProfits:   taxable,
			AugmentedProfits:      augmented,
			DividendIncome:        f.dividends,
			Slices:                slices,
			CTCharge:              domain.NewAmount(periodCharge),
			MarginalRelief:        domain.NewAmount(periodRelief),
		}
		result.Periods = append(result.Periods, pr)
		result.Slices = append(result.Slices, slices...)

		totalTaxable = totalTaxable.Add(taxable)
		totalDividends = totalDividends.Add(f.dividends)
		totalCharge = totalCharge.Add(periodCharge)
		totalRelief = totalRelief.Add(periodRelief)
		totalAIACap = totalAIACap.Add(aiaCap)
		totalTradeClaimed = totalTradeClaimed.Add(tradeClaim)
		totalNonTradeClaims = totalNonTradeClaims.Add(nonTradeClaim)
		totalTradingProfit = totalTradingProfit.Add(tradingNet)
		totalNonTrading = totalNonTrading.Add(decimal.Max(nonTradingAfterAIA, decimal.Zero))
		totalPropertyInc = totalPropertyInc.Add(streams.propertyProfit)
		totalCapitalLoss = totalCapitalLoss.Add(streams.capitalLossUnrelieved)
		totalTradingUsed = totalTradingUsed.Add(tradingAudit.Used)
		totalPropertyUsed = totalPropertyUsed.Add(propertyAudit.Used)
	}

	augmentedTotal := totalTaxable.Add(totalDividends)

	effectiveRate := decimal.Zero
	if totalTaxable.IsPositive() {
		effectiveRate = totalCharge.Div(totalTaxable)
	}

	pbt := n.AccountsProfitBeforeTax()
	result.Accounts = domain.AccountsSummary{
		Turnover:        domain.NewAmount(n.Turnover),
		ProfitBeforeTax: domain.NewAmount(pbt),
		ProfitAfterTax:  domain.NewAmount(pbt.Sub(totalCharge)),
	}
	result.Computation = domain.ComputationSummary{
		TaxableTradingProfit:      domain.NewAmount(totalTradingProfit),
		TaxableNonTradingProfits:  domain.NewAmount(totalNonTrading),
		TaxableTotalProfits:       domain.NewAmount(totalTaxable),
		AugmentedProfits:          domain.NewAmount(augmentedTotal),
		CapitalAllowances:         domain.NewAmount(totalTradeClaimed.Add(totalNonTradeClaims)),
		TradingLossUsed:           domain.NewAmount(totalTradingUsed),
		TradingLossCarriedForward: domain.NewAmount(tradingPool.carriedForward()),
	}
	result.Property = domain.PropertySummary{
		PropertyLossUsed:               domain.NewAmount(totalPropertyUsed),
		PropertyLossCF:                 domain.NewAmount(propertyPool.carriedForward()),
		PropertyBusinessIncomeForCT600: domain.NewAmount(totalPropertyInc),
	}
	result.Tax = domain.TaxSummary{
		CorporationTaxCharge: domain.NewAmount(totalCharge),
		MarginalRelief:       domain.NewAmount(totalRelief),
		TotalTaxChargeable:   domain.NewAmount(totalCharge),
		EffectiveRate:        effectiveRate,
	}
	result.Metadata = domain.ResultMetadata{
		TradingLossPool: domain.LossPool{
			BroughtForward: n.TradingLossBroughtForward,
			Available:      n.TradingLossBroughtForward,
			Used:           totalTradingUsed,
			CarriedForward: tradingPool.carriedForward(),
		},
		PropertyLossPool: domain.LossPool{
			BroughtForward: n.PropertyLossBroughtForward,
			Available:      n.PropertyLossBroughtForward,
			Used:           totalPropertyUsed,
			CarriedForward: propertyPool.carriedForward(),
		},
		CapitalLossUnrelieved: totalCapitalLoss,
		AIA: domain.AIAAllocation{
			Cap:               totalAIACap,
			TradeRequested:    n.AIATradeAdditions,
			NonTradeRequested: n.AIANonTradeAdditions,
			TradeClaimed:      totalTradeClaimed,
			NonTradeClaimed:   totalNonTradeClaims,
		},
		AccountingPeriodSplit: len(periods) > 1,
	}

	return result, nil
}
