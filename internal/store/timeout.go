package store

import (
	"context"
	"time"

	"parking-maintenance-backend/internal/model"
)

// timeoutStore bounds every call on the wrapped store so a hung database
// cannot stall the maintenance worker forever.
type timeoutStore struct {
	next    Store
	timeout time.Duration
}

// WithTimeout wraps s so that each call runs under its own deadline.
// A non-positive timeout returns s unchanged.
func WithTimeout(s Store, timeout time.Duration) Store {
	if timeout <= 0 {
		return s
	}
	return &timeoutStore{next: s, timeout: timeout}
}

func (t *timeoutStore) Sessions(ctx context.Context) ([]model.ParkingSession, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Sessions(ctx)
}

func (t *timeoutStore) Spots(ctx context.Context) ([]model.ParkingSpot, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Spots(ctx)
}

func (t *timeoutStore) Subscribers(ctx context.Context) ([]model.Subscriber, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Subscribers(ctx)
}

func (t *timeoutStore) Reservations(ctx context.Context) ([]model.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Reservations(ctx)
}

func (t *timeoutStore) UpdateReservation(ctx context.Context, r *model.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.UpdateReservation(ctx, r)
}

func (t *timeoutStore) CreateReservation(ctx context.Context, r *model.Reservation) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.CreateReservation(ctx, r)
}

func (t *timeoutStore) Marker(ctx context.Context, job string) (model.MaintenanceMarker, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Marker(ctx, job)
}

func (t *timeoutStore) SaveMarker(ctx context.Context, m model.MaintenanceMarker) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.SaveMarker(ctx, m)
}

func (t *timeoutStore) PushSubscriptions(ctx context.Context) ([]model.PushSubscription, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.PushSubscriptions(ctx)
}

func (t *timeoutStore) SavePushSubscription(ctx context.Context, sub *model.PushSubscription) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.SavePushSubscription(ctx, sub)
}

func (t *timeoutStore) DeletePushSubscription(ctx context.Context, endpoint string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.DeletePushSubscription(ctx, endpoint)
}
