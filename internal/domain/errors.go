package domain

import "errors"

var (
	// ErrInvalidArgument is returned when growth parameters are out of range
	// (non-positive principal or non-positive rate). No schedule is produced.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInconsistentSchedule is returned when a schedule does not satisfy the
	// ledger invariants for the parameters it claims to derive from.
	ErrInconsistentSchedule = errors.New("inconsistent schedule")
)
