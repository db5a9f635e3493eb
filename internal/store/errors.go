package store

import (
	"errors"
	"fmt"
)

// Kind names one of the entity collections the store serves.
type Kind string

const (
	KindSessions     Kind = "sessions"
	KindSpots        Kind = "spots"
	KindSubscribers  Kind = "subscribers"
	KindReservations Kind = "reservations"
)

// ErrReservationNotFound is returned when an update targets a reservation that does not exist.
var ErrReservationNotFound = errors.New("reservation not found")

// FetchError reports a failed read of a whole entity collection.
type FetchError struct {
	Kind Kind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
