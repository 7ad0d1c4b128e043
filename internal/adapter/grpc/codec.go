package grpc

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/wealthflow-growth/internal/domain"
)

// Field names of the request and response structs
const (
	fieldPrincipal         = "principal"
	fieldAnnualRatePercent = "annual_rate_percent"
	fieldRequestID         = "request_id"
	fieldYearsToDouble     = "years_to_double"
	fieldRecords           = "records"
	fieldYear              = "year"
	fieldBeginningBalance  = "beginning_balance"
	fieldInterestEarned    = "interest_earned"
	fieldEndingBalance     = "ending_balance"
)

// errMalformed marks wire payloads that cannot be decoded
var errMalformed = errors.New("malformed message")

// encodeRequest builds the GenerateSchedule request for the given parameters
// Amounts travel as strings to keep every digit
func encodeRequest(params domain.GrowthParameters) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldPrincipal:         structpb.NewStringValue(params.Principal.String()),
		fieldAnnualRatePercent: structpb.NewStringValue(params.AnnualRatePercent.String()),
	}}
}

// decodeRequest reads the growth parameters out of a request
// It only checks the format; range checks belong to the generator
func decodeRequest(req *structpb.Struct) (domain.GrowthParameters, error) {
	principal, err := decimalField(req, fieldPrincipal)
	if err != nil {
		return domain.GrowthParameters{}, err
	}
	rate, err := decimalField(req, fieldAnnualRatePercent)
	if err != nil {
		return domain.GrowthParameters{}, err
	}
	return domain.GrowthParameters{Principal: principal, AnnualRatePercent: rate}, nil
}

// encodeSchedule builds the GenerateSchedule response
func encodeSchedule(requestID string, schedule domain.Schedule) *structpb.Struct {
	records := make([]*structpb.Value, 0, len(schedule))
	for _, r := range schedule {
		records = append(records, structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			fieldYear:             structpb.NewNumberValue(float64(r.Year)),
			fieldBeginningBalance: structpb.NewStringValue(r.BeginningBalance.String()),
			fieldInterestEarned:   structpb.NewStringValue(r.InterestEarned.String()),
			fieldEndingBalance:    structpb.NewStringValue(r.EndingBalance.String()),
		}}))
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldRequestID:     structpb.NewStringValue(requestID),
		fieldYearsToDouble: structpb.NewNumberValue(float64(schedule.YearsToDouble())),
		fieldRecords:       structpb.NewListValue(&structpb.ListValue{Values: records}),
	}}
}

// decodeSchedule reads the schedule and request id out of a response
func decodeSchedule(resp *structpb.Struct) (domain.Schedule, string, error) {
	requestID := resp.GetFields()[fieldRequestID].GetStringValue()

	list := resp.GetFields()[fieldRecords].GetListValue()
	if list == nil {
		return nil, requestID, fmt.Errorf("%w: missing %s", errMalformed, fieldRecords)
	}

	schedule := make(domain.Schedule, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		fields := v.GetStructValue()
		if fields == nil {
			return nil, requestID, fmt.Errorf("%w: record %d is not an object", errMalformed, i)
		}

		year, err := intField(fields, fieldYear)
		if err != nil {
			return nil, requestID, fmt.Errorf("record %d: %w", i, err)
		}
		record := domain.YearRecord{Year: year}
		for name, dst := range map[string]*decimal.Decimal{
			fieldBeginningBalance: &record.BeginningBalance,
			fieldInterestEarned:   &record.InterestEarned,
			fieldEndingBalance:    &record.EndingBalance,
		} {
			if *dst, err = decimalField(fields, name); err != nil {
				return nil, requestID, fmt.Errorf("record %d: %w", i, err)
			}
		}
		schedule = append(schedule, record)
	}

	years, err := intField(resp, fieldYearsToDouble)
	if err != nil {
		return nil, requestID, err
	}
	if years != schedule.YearsToDouble() {
		return nil, requestID, fmt.Errorf("%w: %s is %d but %d records were sent", errMalformed, fieldYearsToDouble, years, len(schedule))
	}

	return schedule, requestID, nil
}

// decimalField accepts either a decimal string or a JSON number
func decimalField(s *structpb.Struct, name string) (decimal.Decimal, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: missing %s", errMalformed, name)
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		d, err := decimal.NewFromString(kind.StringValue)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: invalid %s %q", errMalformed, name, kind.StringValue)
		}
		return d, nil
	case *structpb.Value_NumberValue:
		if math.IsNaN(kind.NumberValue) || math.IsInf(kind.NumberValue, 0) {
			return decimal.Zero, fmt.Errorf("%w: invalid %s %v", errMalformed, name, kind.NumberValue)
		}
		return decimal.NewFromFloat(kind.NumberValue), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %s must be a string or a number", errMalformed, name)
	}
}

func intField(s *structpb.Struct, name string) (int, error) {
	v, ok := s.GetFields()[name].GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", errMalformed, name)
	}
	if v.NumberValue != math.Trunc(v.NumberValue) || v.NumberValue < 0 || v.NumberValue > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %v", errMalformed, name, v.NumberValue)
	}
	return int(v.NumberValue), nil
}
