package output

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/openfiling/ctcalc/internal/domain"
)

// GenerateCSVReport writes the headline figures and then one row per
// calculation slice.
func (rg *ReportGenerator) GenerateCSVReport(w io.Writer, run *domain.RunResult) error {
	writer := csv.NewWriter(w)

	summary := [][]string{
		{"Field", "Value"},
		{"Accounting Period Start", run.Normalized.APStart.Format("2006-01-02")},
		{"Accounting Period End", run.Normalized.APEnd.Format("2006-01-02")},
		{"Profit Before Tax", run.Result.Accounts.ProfitBeforeTax.Rounded().String()},
		{"Taxable Total Profits", run.Result.Computation.TaxableTotalProfits.Rounded().String()},
		{"Augmented Profits", run.Result.Computation.AugmentedProfits.Rounded().String()},
		{"Corporation Tax Charge", run.Result.Tax.CorporationTaxCharge.Rounded().String()},
		{"Marginal Relief", run.Result.Tax.MarginalRelief.Rounded().String()},
		{"Total Tax Chargeable", run.Result.Tax.TotalTaxChargeable.Rounded().String()},
	}
	for _, row := range summary {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	if err := writer.Write([]string{""}); err != nil {
		return err
	}

	header := []string{
		"Financial Years",
		"Days",
		"Taxable Profit",
		"Augmented Profit",
		"Lower Limit",
		"Upper Limit",
		"Small Rate",
		"Main Rate",
		"Band",
		"Marginal Relief",
		"CT Charge",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, s := range run.Result.Slices {
		years := make([]string, len(s.FYYears))
		for i, y := range s.FYYears {
			years[i] = strconv.Itoa(y)
		}
		row := []string{
			strings.Join(years, "+"),
			strconv.Itoa(s.Days),
			s.TaxableProfit.Rounded().String(),
			s.AugmentedProfit.Rounded().String(),
			s.LowerLimit.Rounded().String(),
			s.UpperLimit.Rounded().String(),
			s.SmallRate.String(),
			s.MainRate.String(),
			string(s.Band),
			s.MarginalRelief.Rounded().String(),
			s.CTCharge.Rounded().String(),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
