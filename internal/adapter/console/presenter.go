package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-growth/internal/domain"
)

// DefaultCurrency is the ISO 4217 code used when none is configured
const DefaultCurrency = "USD"

const (
	yearWidth   = 8
	amountWidth = 20
	ruleWidth   = 76
)

// Presenter renders schedules for a terminal
// It only formats; every value it prints comes from the schedule
type Presenter struct {
	Out      io.Writer
	currency *money.Currency
}

// NewPresenter creates a Presenter writing to out and formatting amounts in currency
func NewPresenter(out io.Writer, currency string) (*Presenter, error) {
	cur := money.GetCurrency(strings.ToUpper(currency))
	if cur == nil {
		return nil, fmt.Errorf("unknown currency %q", currency)
	}
	return &Presenter{Out: out, currency: cur}, nil
}

// FormatMoney rounds an amount to the currency's minor unit and formats it
// with the currency symbol and thousands separators (1100 -> $1,100.00)
func (p *Presenter) FormatMoney(amount decimal.Decimal) string {
	minor := amount.Shift(int32(p.currency.Fraction)).Round(0)
	if !minor.BigInt().IsInt64() {
		// Beyond go-money's int64 range; keep the digits, drop the grouping
		return amount.StringFixed(int32(p.currency.Fraction)) + " " + p.currency.Code
	}
	return money.New(minor.IntPart(), p.currency.Code).Display()
}

// SummaryLine is the sentence stating how long the principal takes to double
func (p *Presenter) SummaryLine(params domain.GrowthParameters, schedule domain.Schedule) string {
	return fmt.Sprintf("It will take %d years for an investment of %s to double at an interest rate of %s%%.",
		schedule.YearsToDouble(), p.FormatMoney(params.Principal), params.AnnualRatePercent)
}

// Summary writes the summary sentence preceded by a blank line
func (p *Presenter) Summary(params domain.GrowthParameters, schedule domain.Schedule) {
	fmt.Fprintln(p.Out)
	fmt.Fprintln(p.Out, p.SummaryLine(params, schedule))
}

// Table writes the schedule as a fixed-width table, one row per year
func (p *Presenter) Table(schedule domain.Schedule) {
	rule := strings.Repeat("-", ruleWidth)

	fmt.Fprintln(p.Out)
	fmt.Fprintln(p.Out, "Yearly Growth Schedule")
	fmt.Fprintln(p.Out, rule)
	fmt.Fprintln(p.Out, row("Year", "Beginning Balance", "Interest Earned", "Ending Balance"))
	fmt.Fprintln(p.Out, rule)

	for _, r := range schedule {
		fmt.Fprintln(p.Out, row(
			fmt.Sprint(r.Year),
			p.FormatMoney(r.BeginningBalance),
			p.FormatMoney(r.InterestEarned),
			p.FormatMoney(r.EndingBalance),
		))
	}

	fmt.Fprintln(p.Out, rule)
}

// Markdown returns the summary and the schedule as a markdown document
func (p *Presenter) Markdown(params domain.GrowthParameters, schedule domain.Schedule) string {
	var b strings.Builder

	b.WriteString("# Yearly Growth Schedule\n\n")
	b.WriteString(p.SummaryLine(params, schedule))
	b.WriteString("\n\n")
	b.WriteString("| Year | Beginning Balance | Interest Earned | Ending Balance |\n")
	b.WriteString("|---:|---:|---:|---:|\n")
	for _, r := range schedule {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n",
			r.Year,
			p.FormatMoney(r.BeginningBalance),
			p.FormatMoney(r.InterestEarned),
			p.FormatMoney(r.EndingBalance),
		)
	}

	return b.String()
}

// RenderMarkdown writes the markdown document styled for the terminal
// style is a glamour standard style name ("dark", "light", "notty", ...)
func (p *Presenter) RenderMarkdown(params domain.GrowthParameters, schedule domain.Schedule, style string, width int) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}

	out, err := renderer.Render(p.Markdown(params, schedule))
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	_, err = io.WriteString(p.Out, out)
	return err
}

func row(year, beginning, interest, ending string) string {
	return strings.Join([]string{
		center(year, yearWidth),
		center(beginning, amountWidth),
		center(interest, amountWidth),
		center(ending, amountWidth),
	}, " | ")
}

// center pads s to width display cells, the extra cell going to the right
func center(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
