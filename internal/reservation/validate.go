package reservation

import (
	"errors"
	"fmt"
	"time"

	"parking-maintenance-backend/internal/parse"
)

const (
	// MinLeadTime is how far ahead of now a reservation must start.
	MinLeadTime = 24 * time.Hour
	// MaxLeadTime is the furthest ahead a reservation may start.
	MaxLeadTime = 7 * 24 * time.Hour
)

var (
	ErrMissingField      = errors.New("date, start time and end time are required")
	ErrBadTimeFormat     = errors.New("time must be in HH:MM format, hours 00-23, minutes 00-59")
	ErrStartNotBeforeEnd = errors.New("start time must be before end time")
	ErrTooSoon           = errors.New("reservations must be placed at least 24 hours in advance")
	ErrTooFar            = errors.New("reservations cannot be made more than 7 days in advance")
)

// ValidationError reports why a reservation request was rejected.
// Reason is one of the Err* values above.
type ValidationError struct {
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid reservation: %v", e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// Validate checks a reservation's creation-time rules in order and stops at
// the first failure. A zero date or empty time counts as missing. The date's
// calendar day is combined with the start time in now's location.
func Validate(date time.Time, startTime, endTime string, now time.Time) error {
	if date.IsZero() || startTime == "" || endTime == "" {
		return &ValidationError{Reason: ErrMissingField}
	}

	startHour, startMinute, err := parse.Clock(startTime)
	if err != nil {
		return &ValidationError{Reason: ErrBadTimeFormat}
	}
	endHour, endMinute, err := parse.Clock(endTime)
	if err != nil {
		return &ValidationError{Reason: ErrBadTimeFormat}
	}

	if startHour*60+startMinute >= endHour*60+endMinute {
		return &ValidationError{Reason: ErrStartNotBeforeEnd}
	}

	y, m, d := date.Date()
	start := time.Date(y, m, d, startHour, startMinute, 0, 0, now.Location())
	if start.Before(now.Add(MinLeadTime)) {
		return &ValidationError{Reason: ErrTooSoon}
	}
	if start.After(now.Add(MaxLeadTime)) {
		return &ValidationError{Reason: ErrTooFar}
	}
	return nil
}
