package growth

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-growth/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestGenerateSchedule_TenPercentScenario(t *testing.T) {
	// 1000 at 10%: 1100, 1210, 1331, 1464.1, 1610.51, 1771.561, 1948.7171, 2143.58881
	schedule, err := GenerateSchedule(d("1000"), d("10"))

	require.NoError(t, err)
	require.Len(t, schedule, 8)
	assert.Equal(t, 8, schedule.YearsToDouble())

	first := schedule[0]
	assert.Equal(t, 1, first.Year)
	assert.True(t, first.BeginningBalance.Equal(d("1000")), "year 1 should begin at 1000")
	assert.True(t, first.InterestEarned.Equal(d("100")), "year 1 interest should be 100")
	assert.True(t, first.EndingBalance.Equal(d("1100")), "year 1 should end at 1100")

	last, ok := schedule.Final()
	require.True(t, ok)
	assert.Equal(t, 8, last.Year)
	assert.True(t, last.EndingBalance.Equal(d("2143.58881")), "got %s", last.EndingBalance)
	assert.True(t, schedule[6].EndingBalance.Equal(d("1948.7171")), "got %s", schedule[6].EndingBalance)
}

func TestGenerateSchedule_HundredPercentDoublesInOneYear(t *testing.T) {
	principals := []string{"0.01", "1", "1000", "123456789.987654321"}

	for _, p := range principals {
		t.Run(p, func(t *testing.T) {
			schedule, err := GenerateSchedule(d(p), d("100"))

			require.NoError(t, err)
			require.Len(t, schedule, 1)
			assert.True(t, schedule[0].InterestEarned.Equal(d(p)))
			assert.True(t, schedule[0].EndingBalance.Equal(d(p).Mul(decimal.NewFromInt(2))))
		})
	}
}

func TestGenerateSchedule_OnePercentTakesSeventyYears(t *testing.T) {
	schedule, err := GenerateSchedule(d("1000"), d("1"))

	require.NoError(t, err)
	assert.Len(t, schedule, 70)
	assert.True(t, schedule[68].EndingBalance.LessThan(d("2000")), "year 69 must still be below target")
	assert.True(t, schedule[69].EndingBalance.GreaterThanOrEqual(d("2000")))
}

func TestGenerateSchedule_LowRate(t *testing.T) {
	schedule, err := GenerateSchedule(d("1000"), d("0.1"))

	require.NoError(t, err)
	assert.Len(t, schedule, 694)
	assert.NoError(t, schedule.Validate(domain.GrowthParameters{Principal: d("1000"), AnnualRatePercent: d("0.1")}))
}

func TestGenerateSchedule_VeryLowRatesStayBounded(t *testing.T) {
	tests := []struct {
		rate  string
		years int
	}{
		{rate: "0.05", years: 1387},
		{rate: "0.01", years: 6932},
		{rate: "0.001", years: 69316},
	}

	for _, tt := range tests {
		t.Run(tt.rate, func(t *testing.T) {
			params := domain.GrowthParameters{Principal: d("1000"), AnnualRatePercent: d(tt.rate)}

			schedule, err := GenerateSchedule(params.Principal, params.AnnualRatePercent)

			require.NoError(t, err)
			require.Len(t, schedule, tt.years)
			want, err := TheoreticalYears(params.AnnualRatePercent)
			require.NoError(t, err)
			assert.Equal(t, want, schedule.YearsToDouble())

			// Every amount is held at the ledger precision, not an ever longer exact product
			for _, r := range schedule {
				for _, v := range []decimal.Decimal{r.BeginningBalance, r.InterestEarned, r.EndingBalance} {
					if v.NumDigits() > domain.SignificantDigits {
						t.Fatalf("year %d holds %d digits: %s", r.Year, v.NumDigits(), v)
					}
				}
			}
			assert.NoError(t, schedule.Validate(params))
		})
	}
}

func TestGenerateSchedule_RateAboveHundredIsNotClamped(t *testing.T) {
	schedule, err := GenerateSchedule(d("1000"), d("250"))

	require.NoError(t, err)
	require.Len(t, schedule, 1)
	// Clamping to 100% would have produced 1000 of interest
	assert.True(t, schedule[0].InterestEarned.Equal(d("2500")))
	assert.True(t, schedule[0].EndingBalance.Equal(d("3500")))
}

func TestGenerateSchedule_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		errMsg    string
	}{
		{name: "Zero principal", principal: "0", rate: "5", errMsg: "principal must be positive"},
		{name: "Negative principal", principal: "-5", rate: "5", errMsg: "principal must be positive"},
		{name: "Zero rate", principal: "1000", rate: "0", errMsg: "annual rate must be positive"},
		{name: "Negative rate", principal: "1000", rate: "-1", errMsg: "annual rate must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := GenerateSchedule(d(tt.principal), d(tt.rate))

			assert.Nil(t, schedule, "no partial schedule on invalid input")
			require.ErrorIs(t, err, domain.ErrInvalidArgument)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGenerateSchedule_LedgerInvariants(t *testing.T) {
	rates := []string{"0.5", "1", "2", "2.5", "3", "4", "5", "6", "7", "7.2", "8", "9", "12", "15", "20", "25", "33", "50", "72", "99", "100", "150", "250"}
	principals := []string{"1", "1000", "2500.75"}

	for _, rate := range rates {
		for _, principal := range principals {
			t.Run(principal+"@"+rate, func(t *testing.T) {
				params := domain.GrowthParameters{Principal: d(principal), AnnualRatePercent: d(rate)}
				schedule, err := GenerateSchedule(params.Principal, params.AnnualRatePercent)
				require.NoError(t, err)

				// Chain, growth, interest and first-crossing checks
				assert.NoError(t, schedule.Validate(params))

				assert.True(t, schedule[0].BeginningBalance.Equal(params.Principal))
				for i := 1; i < len(schedule); i++ {
					assert.True(t, schedule[i].BeginningBalance.Equal(schedule[i-1].EndingBalance))
					assert.True(t, schedule[i].EndingBalance.GreaterThan(schedule[i-1].EndingBalance))
				}

				last, _ := schedule.Final()
				assert.True(t, last.EndingBalance.GreaterThanOrEqual(params.Target()))
				if len(schedule) > 1 {
					assert.True(t, schedule[len(schedule)-2].EndingBalance.LessThan(params.Target()))
				}

				want, err := TheoreticalYears(params.AnnualRatePercent)
				require.NoError(t, err)
				assert.Equal(t, want, schedule.YearsToDouble())
			})
		}
	}
}

func TestGenerateSchedule_Idempotent(t *testing.T) {
	first, err := GenerateSchedule(d("1000"), d("3.75"))
	require.NoError(t, err)
	second, err := GenerateSchedule(d("1000"), d("3.75"))
	require.NoError(t, err)

	assert.True(t, first.Equal(second), "identical inputs must give identical schedules")

	// Each call owns its slice
	first[0].EndingBalance = decimal.Zero
	assert.False(t, first.Equal(second))
	third, err := GenerateSchedule(d("1000"), d("3.75"))
	require.NoError(t, err)
	assert.True(t, second.Equal(third))
}

func TestTheoreticalYears(t *testing.T) {
	tests := []struct {
		rate string
		want int
	}{
		{rate: "100", want: 1},
		{rate: "10", want: 8},
		{rate: "1", want: 70},
		{rate: "0.1", want: 694},
		{rate: "0.01", want: 6932},
		{rate: "0.001", want: 69316},
		{rate: "500", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.rate, func(t *testing.T) {
			got, err := TheoreticalYears(d(tt.rate))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := TheoreticalYears(decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
