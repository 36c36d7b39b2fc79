package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/openfiling/ctcalc/internal/domain"
)

// ReportGenerator renders a run in the supported output formats.
type ReportGenerator struct {
	Verbose bool
}

// NewReportGenerator creates a new report generator.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// GenerateReport writes a report for the run in the requested format.
func (rg *ReportGenerator) GenerateReport(w io.Writer, run *domain.RunResult, format string) error {
	switch format {
	case "console":
		return rg.GenerateConsoleReport(w, run)
	case "json":
		return rg.GenerateJSONReport(w, run)
	case "csv":
		return rg.GenerateCSVReport(w, run)
	case "yaml":
		return rg.GenerateYAMLReport(w, run)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateConsoleReport writes the human-readable breakdown.
func (rg *ReportGenerator) GenerateConsoleReport(w io.Writer, run *domain.RunResult) error {
	n, res := run.Normalized, run.Result

	fmt.Fprintln(w, "==============================================================")
	fmt.Fprintln(w, "CORPORATION TAX COMPUTATION")
	fmt.Fprintln(w, "==============================================================")
	fmt.Fprintf(w, "Accounting period: %s to %s (%d days)\n",
		n.APStart.Format("2006-01-02"), n.APEnd.Format("2006-01-02"), n.APDays)
	if res.Metadata.AccountingPeriodSplit {
		fmt.Fprintf(w, "Period is longer than 12 months and was split into %d periods\n", len(res.Periods))
	}
	if n.AssociatedCompanies > 0 {
		fmt.Fprintf(w, "Associated companies: %d (thresholds divided by %d)\n",
			n.AssociatedCompanies, n.AssociatedCompanies+1)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PROFITS")
	fmt.Fprintln(w, "-------")
	fmt.Fprintf(w, "Profit before tax:        %s\n", FormatCurrency(res.Accounts.ProfitBeforeTax.Rounded()))
	fmt.Fprintf(w, "Taxable trading profit:   %s\n", FormatCurrency(res.Computation.TaxableTradingProfit.Rounded()))
	fmt.Fprintf(w, "Non-trading profits:      %s\n", FormatCurrency(res.Computation.TaxableNonTradingProfits.Rounded()))
	fmt.Fprintf(w, "Taxable total profits:    %s\n", FormatCurrency(res.Computation.TaxableTotalProfits.Rounded()))
	fmt.Fprintf(w, "Augmented profits:        %s\n", FormatCurrency(res.Computation.AugmentedProfits.Rounded()))
	fmt.Fprintln(w)

	if !res.Computation.CapitalAllowances.IsZero() || !res.Metadata.AIA.TradeRequested.IsZero() || !res.Metadata.AIA.NonTradeRequested.IsZero() {
		fmt.Fprintln(w, "CAPITAL ALLOWANCES")
		fmt.Fprintln(w, "------------------")
		fmt.Fprintf(w, "AIA cap for period:       %s\n", FormatCurrency(domain.RoundHalfAwayFromZero(res.Metadata.AIA.Cap)))
		fmt.Fprintf(w, "AIA trade claim:          %s (requested %s)\n",
			FormatCurrency(domain.RoundHalfAwayFromZero(res.Metadata.AIA.TradeClaimed)),
			FormatCurrency(domain.RoundHalfAwayFromZero(res.Metadata.AIA.TradeRequested)))
		fmt.Fprintf(w, "AIA non-trade claim:      %s (requested %s)\n",
			FormatCurrency(domain.RoundHalfAwayFromZero(res.Metadata.AIA.NonTradeClaimed)),
			FormatCurrency(domain.RoundHalfAwayFromZero(res.Metadata.AIA.NonTradeRequested)))
		fmt.Fprintln(w)
	}

	if !res.Metadata.TradingLossPool.BroughtForward.IsZero() || !res.Metadata.TradingLossPool.CarriedForward.IsZero() ||
		!res.Metadata.PropertyLossPool.BroughtForward.IsZero() || !res.Metadata.PropertyLossPool.CarriedForward.IsZero() {
		fmt.Fprintln(w, "LOSS RELIEF")
		fmt.Fprintln(w, "-----------")
		fmt.Fprintf(w, "Trading losses b/f:       %s used %s c/f %s\n",
			FormatCurrency(domain.RoundHalfAwayFromZero(res.Metadata.TradingLossPool.BroughtForward)),
			FormatCurrency(domain.RoundHalfAwayFromZero(res.Metadata.TradingLossPool.Used)),
			FormatCurrency(domain.RoundHalfAwayFromZero(res.Metadata.TradingLossPool.CarriedForward)))
		fmt.Fprintf(w, "Property losses b/f:      %s used %s c/f %s\n",
			FormatCurrency(domain.RoundHalfAwayFromZero(res.Metadata.PropertyLossPool.BroughtForward)),
			FormatCurrency(domain.RoundHalfAwayFromZero(res.Metadata.PropertyLossPool.Used)),
			FormatCurrency(domain.RoundHalfAwayFromZero(res.Metadata.PropertyLossPool.CarriedForward)))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "TAX BY SLICE")
	fmt.Fprintln(w, "------------")
	for _, s := range res.Slices {
		fmt.Fprintf(w, "%-12s %4d days  profit %s  band %-15s  tax %s",
			sliceLabel(s), s.Days,
			FormatCurrency(s.TaxableProfit.Rounded()),
			s.Band,
			FormatCurrency(s.CTCharge.Rounded()))
		if s.Band == domain.BandMarginalRelief {
			fmt.Fprintf(w, "  (marginal relief %s)", FormatCurrency(s.MarginalRelief.Rounded()))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "LIABILITY")
	fmt.Fprintln(w, "---------")
	fmt.Fprintf(w, "Corporation tax charge:   %s\n", FormatCurrency(res.Tax.CorporationTaxCharge.Rounded()))
	fmt.Fprintf(w, "Marginal relief:          %s\n", FormatCurrency(res.Tax.MarginalRelief.Rounded()))
	fmt.Fprintf(w, "Total tax chargeable:     %s\n", FormatCurrency(res.Tax.TotalTaxChargeable.Rounded()))
	fmt.Fprintf(w, "Effective rate:           %s%%\n", res.Tax.EffectiveRate.Mul(decimal.NewFromInt(100)).StringFixed(2))

	if rg.Verbose {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "PERIOD DETAIL")
		fmt.Fprintln(w, "-------------")
		for i, p := range res.Periods {
			kind := "full"
			if p.Period.IsShortPeriod {
				kind = "short"
			}
			fmt.Fprintf(w, "Period %d (%s): %s to %s, %d days\n", i+1, kind,
				p.Period.Start.Format("2006-01-02"), p.Period.End.Format("2006-01-02"), p.Period.Days)
			fmt.Fprintf(w, "  trading before/after AIA:  %s / %s\n",
				FormatCurrency(domain.RoundHalfAwayFromZero(p.TradingProfitBeforeAIA)),
				FormatCurrency(domain.RoundHalfAwayFromZero(p.TradingProfitAfterAIA)))
			fmt.Fprintf(w, "  non-trading before/after:  %s / %s\n",
				FormatCurrency(domain.RoundHalfAwayFromZero(p.NonTradingProfitBeforeAIA)),
				FormatCurrency(domain.RoundHalfAwayFromZero(p.NonTradingProfitAfterAIA)))
			fmt.Fprintf(w, "  taxable / augmented:       %s / %s\n",
				FormatCurrency(domain.RoundHalfAwayFromZero(p.TaxableTotalProfits)),
				FormatCurrency(domain.RoundHalfAwayFromZero(p.AugmentedProfits)))
			if !p.CapitalLossUnrelieved.IsZero() {
				fmt.Fprintf(w, "  unrelieved capital loss:   %s\n",
					FormatCurrency(domain.RoundHalfAwayFromZero(p.CapitalLossUnrelieved)))
			}
		}
	}

	return nil
}

// GenerateJSONReport writes the full run as indented JSON.
func (rg *ReportGenerator) GenerateJSONReport(w io.Writer, run *domain.RunResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

// GenerateYAMLReport writes the full run as YAML.
func (rg *ReportGenerator) GenerateYAMLReport(w io.Writer, run *domain.RunResult) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(run)
}

func sliceLabel(s domain.SliceResult) string {
	if len(s.FYYears) == 1 {
		return fmt.Sprintf("FY%d", s.FYYears[0])
	}
	return fmt.Sprintf("FY%d-FY%d", s.FYYears[0], s.FYYears[len(s.FYYears)-1])
}

// FormatCurrency formats a whole-pound decimal with thousands
// separators.
func FormatCurrency(d decimal.Decimal) string {
	negative := d.IsNegative()
	s := d.Abs().StringFixed(0)

	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	if negative {
		return "-£" + sb.String()
	}
	return "£" + sb.String()
}
