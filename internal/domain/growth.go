package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SignificantDigits is the working precision of a ledger, counted from the
// principal's leading digit. Interest is rounded (half to even) at that
// place, so balances keep a bounded number of digits however long the run.
const SignificantDigits = 34

var two = decimal.NewFromInt(2)

// GrowthParameters holds the validated inputs of a single doubling run
// Principal is the starting balance, AnnualRatePercent is a percentage (5 means 5%)
type GrowthParameters struct {
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal
}

// Validate ensures the parameters can produce a terminating schedule
// Returns an error wrapping ErrInvalidArgument if validation fails
// Rates above 100 are accepted: compounding still converges, only faster
func (p GrowthParameters) Validate() error {
	if !p.Principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidArgument, p.Principal)
	}

	// A zero rate never grows the balance, a negative one shrinks it.
	if !p.AnnualRatePercent.IsPositive() {
		return fmt.Errorf("%w: annual rate must be positive, got %s", ErrInvalidArgument, p.AnnualRatePercent)
	}

	return nil
}

// DecimalRate converts the percentage into a multiplier (10 -> 0.1)
// Shift moves the exponent only; Div would round at DivisionPrecision
func (p GrowthParameters) DecimalRate() decimal.Decimal {
	return p.AnnualRatePercent.Shift(-2)
}

// Target is the balance that ends the schedule: twice the principal
func (p GrowthParameters) Target() decimal.Decimal {
	return p.Principal.Mul(two)
}

// Interest is one year of interest on balance, rounded to the ledger quantum
// Balances never fall below the principal, so each keeps at least
// SignificantDigits significant digits; currency rounding is left to the presenter
func (p GrowthParameters) Interest(balance decimal.Decimal) decimal.Decimal {
	exact := balance.Mul(p.DecimalRate())
	rounded := exact.RoundBank(p.quantumPlaces())
	// A rate below the quantum must still grow the balance
	if rounded.IsZero() {
		return exact
	}
	return rounded
}

// quantumPlaces is the number of fractional digits that leaves the principal
// with SignificantDigits significant digits
func (p GrowthParameters) quantumPlaces() int32 {
	integerDigits := int32(p.Principal.NumDigits()) + p.Principal.Exponent()
	return SignificantDigits - integerDigits
}

// YearRecord is one row of the growth ledger
type YearRecord struct {
	Year             int // 1-based
	BeginningBalance decimal.Decimal
	InterestEarned   decimal.Decimal
	EndingBalance    decimal.Decimal
}

// Equal reports whether two records hold the same year and the same amounts
func (r YearRecord) Equal(o YearRecord) bool {
	return r.Year == o.Year &&
		r.BeginningBalance.Equal(o.BeginningBalance) &&
		r.InterestEarned.Equal(o.InterestEarned) &&
		r.EndingBalance.Equal(o.EndingBalance)
}

// Schedule is the ordered ledger, one record per compounding year
type Schedule []YearRecord

// YearsToDouble is the number of whole years until the balance doubled
func (s Schedule) YearsToDouble() int {
	return len(s)
}

// Final returns the last record, the year in which the target was reached
func (s Schedule) Final() (YearRecord, bool) {
	if len(s) == 0 {
		return YearRecord{}, false
	}
	return s[len(s)-1], true
}

// Equal reports whether both schedules are element-wise equal
func (s Schedule) Equal(o Schedule) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Validate checks that the schedule is the ledger the parameters produce:
// contiguous years from 1, a chained balance, interest as computed by Interest, strictly growing
// balances, and a target reached in the final year and not before.
// Returns an error wrapping ErrInconsistentSchedule if a check fails
func (s Schedule) Validate(p GrowthParameters) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if len(s) == 0 {
		return fmt.Errorf("%w: schedule is empty", ErrInconsistentSchedule)
	}

	target := p.Target()
	previous := p.Principal

	for i, r := range s {
		if r.Year != i+1 {
			return fmt.Errorf("%w: record %d has year %d", ErrInconsistentSchedule, i, r.Year)
		}
		if !r.BeginningBalance.Equal(previous) {
			return fmt.Errorf("%w: year %d begins at %s, expected %s", ErrInconsistentSchedule, r.Year, r.BeginningBalance, previous)
		}
		if !r.InterestEarned.Equal(p.Interest(r.BeginningBalance)) {
			return fmt.Errorf("%w: year %d interest %s does not match rate", ErrInconsistentSchedule, r.Year, r.InterestEarned)
		}
		if !r.EndingBalance.Equal(r.BeginningBalance.Add(r.InterestEarned)) {
			return fmt.Errorf("%w: year %d ending balance %s is not beginning plus interest", ErrInconsistentSchedule, r.Year, r.EndingBalance)
		}
		if !r.EndingBalance.GreaterThan(r.BeginningBalance) {
			return fmt.Errorf("%w: year %d does not grow", ErrInconsistentSchedule, r.Year)
		}

		last := i == len(s)-1
		reached := r.EndingBalance.GreaterThanOrEqual(target)
		switch {
		case reached && !last:
			return fmt.Errorf("%w: target %s already reached in year %d of %d", ErrInconsistentSchedule, target, r.Year, len(s))
		case !reached && last:
			return fmt.Errorf("%w: final year %d ends at %s, below target %s", ErrInconsistentSchedule, r.Year, r.EndingBalance, target)
		}
		previous = r.EndingBalance
	}

	return nil
}
