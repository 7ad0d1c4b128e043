package growth

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-growth/internal/domain"
)

// maxPreallocatedYears bounds the initial capacity for tiny rates
const maxPreallocatedYears = 4096

// GenerateSchedule compounds the principal once a year at the given rate until
// the balance first reaches or exceeds twice the principal
// Returns the year-by-year ledger; its length is the number of years to double
// Logic:
//  1. Convert the percentage into a decimal rate (10 -> 0.1)
//  2. Starting from the principal, add one year of interest per iteration
//  3. Stop as soon as the ending balance is >= 2 x principal
//
// Interest is rounded to the ledger quantum (see domain.SignificantDigits) and
// the ending balance is the exact sum, so each record stays consistent and no
// value outgrows the working precision, even over tens of thousands of years
func GenerateSchedule(principal, annualRatePercent decimal.Decimal) (domain.Schedule, error) {
	params := domain.GrowthParameters{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	target := params.Target()
	current := params.Principal

	schedule := make(domain.Schedule, 0, min(estimateYears(params.DecimalRate()), maxPreallocatedYears))

	// Terminates because current grows by a factor (1 + rate) > 1 every year
	for current.LessThan(target) {
		beginning := current
		interest := params.Interest(beginning)
		current = beginning.Add(interest)

		schedule = append(schedule, domain.YearRecord{
			Year:             len(schedule) + 1,
			BeginningBalance: beginning,
			InterestEarned:   interest,
			EndingBalance:    current,
		})
	}

	return schedule, nil
}

// TheoreticalYears returns ceil(ln 2 / ln(1 + r)), the number of whole years
// a schedule at this rate takes to double, independent of the principal
// It is computed in float64 and intended as a bound, not as the ledger itself
func TheoreticalYears(annualRatePercent decimal.Decimal) (int, error) {
	if !annualRatePercent.IsPositive() {
		return 0, fmt.Errorf("%w: annual rate must be positive, got %s", domain.ErrInvalidArgument, annualRatePercent)
	}
	return estimateYears(annualRatePercent.Shift(-2)), nil
}

func estimateYears(rate decimal.Decimal) int {
	// Interest alone covers the principal in the first year
	if rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return 1
	}

	// For r < 1 the exact answer is never an integer: 2^(1/n) - 1 is
	// irrational for n > 1
	years := math.Ceil(math.Ln2 / math.Log1p(rate.InexactFloat64()))
	if years > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(years)
}
