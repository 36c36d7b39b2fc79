package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/openfiling/ctcalc/internal/mapper"
	"github.com/openfiling/ctcalc/internal/output"
)

// View renders the current state of the application.
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}
	if m.err != nil {
		return m.renderApp(m.renderError())
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.renderHome()
	case SceneResults, SceneBoxes:
		content = m.viewport.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps scene content with the title and status bars.
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("ctcalc - Corporation Tax Computation")
	breadcrumb := SubtitleStyle.Render(fmt.Sprintf("%s / %s", m.currentScene, m.inputPath))
	return lipgloss.JoinVertical(lipgloss.Left, title, breadcrumb)
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("h", "home"),
		formatShortcut("r", "computation"),
		formatShortcut("b", "CT600"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	return StatusBarStyle.Render(strings.Join(shortcuts, "  "))
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + StatusBarStyle.Render(" "+desc)
}

func (m Model) renderLoading() string {
	return fmt.Sprintf("\n  %s %s\n", m.spinner.View(), m.loadingMessage)
}

func (m Model) renderError() string {
	return BoxStyle.Render(
		ErrorStyle.Render("Error") + "\n\n" + m.err.Error() + "\n\n" +
			StatusBarStyle.Render("esc to dismiss, q to quit"))
}

// renderHome summarizes the loaded input and the headline liability.
func (m Model) renderHome() string {
	if m.run == nil {
		return BoxStyle.Render("No computation yet.")
	}
	n, res := m.run.Normalized, m.run.Result

	var b strings.Builder
	b.WriteString(SectionStyle.Render("ACCOUNTING PERIOD") + "\n")
	b.WriteString(row("Period", fmt.Sprintf("%s to %s (%d days)",
		n.APStart.Format("2006-01-02"), n.APEnd.Format("2006-01-02"), n.APDays)))
	if res.Metadata.AccountingPeriodSplit {
		b.WriteString(row("Split", fmt.Sprintf("%d computation periods", len(res.Periods))))
	}
	if n.AssociatedCompanies > 0 {
		b.WriteString(row("Associated companies", strconv.Itoa(n.AssociatedCompanies)))
	}

	b.WriteString("\n" + SectionStyle.Render("HEADLINE") + "\n")
	b.WriteString(moneyRow("Taxable total profits", res.Computation.TaxableTotalProfits.Rounded()))
	b.WriteString(moneyRow("Corporation tax", res.Tax.TotalTaxChargeable.Rounded()))
	b.WriteString(row("Effective rate", res.Tax.EffectiveRate.Mul(hundred).StringFixed(2)+"%"))

	b.WriteString("\n" + StatusBarStyle.Render("Press r for the full computation, b for CT600 boxes."))
	return BoxStyle.Render(b.String())
}

// resultsContent is the scrollable computation breakdown.
func (m Model) resultsContent() string {
	if m.run == nil {
		return "No computation yet."
	}
	res := m.run.Result

	var b strings.Builder
	b.WriteString(SectionStyle.Render("PROFITS") + "\n")
	b.WriteString(moneyRow("Profit before tax", res.Accounts.ProfitBeforeTax.Rounded()))
	b.WriteString(moneyRow("Taxable trading profit", res.Computation.TaxableTradingProfit.Rounded()))
	b.WriteString(moneyRow("Non-trading profits", res.Computation.TaxableNonTradingProfits.Rounded()))
	b.WriteString(moneyRow("Taxable total profits", res.Computation.TaxableTotalProfits.Rounded()))
	b.WriteString(moneyRow("Augmented profits", res.Computation.AugmentedProfits.Rounded()))

	if !res.Computation.CapitalAllowances.IsZero() {
		b.WriteString("\n" + SectionStyle.Render("CAPITAL ALLOWANCES") + "\n")
		b.WriteString(moneyRow("AIA claimed", res.Computation.CapitalAllowances.Rounded()))
	}

	if !res.Computation.TradingLossUsed.IsZero() || !res.Computation.TradingLossCarriedForward.IsZero() {
		b.WriteString("\n" + SectionStyle.Render("TRADING LOSSES") + "\n")
		b.WriteString(moneyRow("Used this period", res.Computation.TradingLossUsed.Rounded()))
		b.WriteString(moneyRow("Carried forward", res.Computation.TradingLossCarriedForward.Rounded()))
	}
	if !res.Property.PropertyLossUsed.IsZero() || !res.Property.PropertyLossCF.IsZero() {
		b.WriteString("\n" + SectionStyle.Render("PROPERTY LOSSES") + "\n")
		b.WriteString(moneyRow("Used this period", res.Property.PropertyLossUsed.Rounded()))
		b.WriteString(moneyRow("Carried forward", res.Property.PropertyLossCF.Rounded()))
	}

	b.WriteString("\n" + SectionStyle.Render("TAX BY SLICE") + "\n")
	for _, s := range res.Slices {
		label := fmt.Sprintf("FY%d", s.FYYears[0])
		if len(s.FYYears) > 1 {
			label = fmt.Sprintf("FY%d-FY%d", s.FYYears[0], s.FYYears[len(s.FYYears)-1])
		}
		b.WriteString(fmt.Sprintf("%s  %4d days  %s  %s  %s\n",
			ValueStyle.Render(label), s.Days,
			output.FormatCurrency(s.TaxableProfit.Rounded()),
			BandStyle.Render(string(s.Band)),
			output.FormatCurrency(s.CTCharge.Rounded())))
	}

	b.WriteString("\n" + SectionStyle.Render("LIABILITY") + "\n")
	b.WriteString(moneyRow("Corporation tax charge", res.Tax.CorporationTaxCharge.Rounded()))
	b.WriteString(moneyRow("Marginal relief", res.Tax.MarginalRelief.Rounded()))
	b.WriteString(moneyRow("Total tax chargeable", res.Tax.TotalTaxChargeable.Rounded()))
	return b.String()
}

// boxesContent is the scrollable CT600 box listing.
func (m Model) boxesContent() string {
	if m.run == nil {
		return "No computation yet."
	}
	ret := mapper.MapCT600(m.run)
	values := ret.BoxValues()

	var b strings.Builder
	b.WriteString(SectionStyle.Render("CT600 BOX VALUES") + "\n")
	for _, box := range ret.BoxNumbers() {
		b.WriteString(fmt.Sprintf("%s %s\n",
			LabelStyle.Render("Box "+box), ValueStyle.Render(values[box])))
	}
	return b.String()
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(SectionStyle.Render("KEYS") + "\n")
	for _, line := range [][2]string{
		{"h", "home: input summary and headline liability"},
		{"r", "computation: full breakdown by slice"},
		{"b", "CT600: populated form box values"},
		{"tab", "cycle scenes"},
		{"up/down", "scroll the computation and box views"},
		{"esc", "back"},
		{"q", "quit"},
	} {
		b.WriteString(row(line[0], line[1]))
	}
	return BoxStyle.Render(b.String())
}

var hundred = decimal.NewFromInt(100)

func row(label, value string) string {
	return LabelStyle.Render(label) + " " + value + "\n"
}

func moneyRow(label string, d decimal.Decimal) string {
	return LabelStyle.Render(label) + " " + ValueStyle.Render(output.FormatCurrency(d)) + "\n"
}
