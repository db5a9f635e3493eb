// Package expiry tombstones reservations whose day has passed without being used or canceled.
package expiry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"parking-maintenance-backend/internal/model"
)

// Store is the slice of the data store the expirer needs.
type Store interface {
	Reservations(ctx context.Context) ([]model.Reservation, error)
	UpdateReservation(ctx context.Context, r *model.Reservation) error
}

// PartialWriteError reports reservations whose tombstone could not be written.
// The run still processed every other record.
type PartialWriteError struct {
	Failed int
	Err    error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%d reservation update(s) failed: %v", e.Failed, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}

// Expire clears the start time of every live reservation dated before today
// and returns how many were written. A fetch failure aborts the run; a failed
// write is logged, skipped, and reported as *PartialWriteError at the end.
func Expire(ctx context.Context, store Store, today time.Time) (int, error) {
	reservations, err := store.Reservations(ctx)
	if err != nil {
		return 0, fmt.Errorf("expire stale reservations: %w", err)
	}

	expired := 0
	var failures []error
	for i := range reservations {
		r := reservations[i]
		if !r.Stale(today) {
			continue
		}

		r.StartTime = nil
		if err := store.UpdateReservation(ctx, &r); err != nil {
			log.Printf("Error expiring reservation %d: %v", r.ID, err)
			failures = append(failures, err)
			continue
		}
		expired++
	}

	log.Printf("Expired %d stale reservation(s) dated before %s", expired, today.Format("2006-01-02"))
	if len(failures) > 0 {
		return expired, &PartialWriteError{Failed: len(failures), Err: errors.Join(failures...)}
	}
	return expired, nil
}
