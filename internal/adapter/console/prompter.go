// Package console holds the terminal collaborators of the growth engine:
// a Prompter that acquires validated parameters and a Presenter that renders
// the resulting schedule.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultMaxRatePercent is the upper bound the prompter accepts for a rate
const DefaultMaxRatePercent = 100

// ErrInputFormat is returned when raw text cannot be read as a number
// The prompter handles it by re-prompting; it never reaches the generator
var ErrInputFormat = errors.New("input is not a number")

// Prompter asks for growth parameters until it obtains valid values
// Invalid entries are reported on Out and the question is asked again,
// without a retry limit. Only the end of In stops the loop.
type Prompter struct {
	Out            io.Writer
	MaxRatePercent decimal.Decimal

	scanner *bufio.Scanner
}

// NewPrompter creates a Prompter reading answers from in and writing prompts to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		Out:            out,
		MaxRatePercent: decimal.NewFromInt(DefaultMaxRatePercent),
		scanner:        bufio.NewScanner(in),
	}
}

// ReadRate asks for the annual interest rate, as a percentage in (0, MaxRatePercent]
func (p *Prompter) ReadRate() (decimal.Decimal, error) {
	for {
		rate, err := p.ask("Enter the interest rate as a percentage (e.g., 5 for 5%): ")
		if errors.Is(err, ErrInputFormat) {
			fmt.Fprintln(p.Out, "Invalid interest rate. Enter a valid number.")
			continue
		}
		if err != nil {
			return decimal.Zero, fmt.Errorf("reading interest rate: %w", err)
		}

		if err := p.CheckRate(rate); err != nil {
			fmt.Fprintf(p.Out, "Invalid interest rate. Enter a value between 0 and %s.\n", p.MaxRatePercent)
			fmt.Fprintln(p.Out)
			continue
		}
		return rate, nil
	}
}

// ReadPrincipal asks for the initial investment, a strictly positive amount
func (p *Prompter) ReadPrincipal() (decimal.Decimal, error) {
	for {
		principal, err := p.ask("Enter the initial investment amount: $")
		if errors.Is(err, ErrInputFormat) {
			fmt.Fprintln(p.Out, "Invalid investment amount. Enter a valid number.")
			continue
		}
		if err != nil {
			return decimal.Zero, fmt.Errorf("reading investment amount: %w", err)
		}

		if err := CheckPrincipal(principal); err != nil {
			fmt.Fprintln(p.Out, "Invalid investment amount. Enter a positive number.")
			fmt.Fprintln(p.Out)
			continue
		}
		return principal, nil
	}
}

// CheckRate applies the prompter's acceptance window to a rate
// It is also used for rates given as flags, which are never re-prompted
func (p *Prompter) CheckRate(rate decimal.Decimal) error {
	if !rate.IsPositive() || rate.GreaterThan(p.MaxRatePercent) {
		return fmt.Errorf("interest rate %s is not between 0 and %s", rate, p.MaxRatePercent)
	}
	return nil
}

// CheckPrincipal rejects non-positive investment amounts
func CheckPrincipal(principal decimal.Decimal) error {
	if !principal.IsPositive() {
		return fmt.Errorf("investment amount %s is not positive", principal)
	}
	return nil
}

// ParseAmount reads a number typed by a user, ignoring surrounding blanks
func ParseAmount(text string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInputFormat, text)
	}
	return v, nil
}

func (p *Prompter) ask(question string) (decimal.Decimal, error) {
	fmt.Fprint(p.Out, question)

	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return decimal.Zero, err
		}
		return decimal.Zero, io.ErrUnexpectedEOF
	}
	return ParseAmount(p.scanner.Text())
}
