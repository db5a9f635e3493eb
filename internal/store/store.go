package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parking-maintenance-backend/internal/model"
)

// Store defines every database operation used by the maintenance core and the API.
// Reads are not isolated from each other; callers get a best-effort snapshot.
type Store interface {
	Sessions(ctx context.Context) ([]model.ParkingSession, error)
	Spots(ctx context.Context) ([]model.ParkingSpot, error)
	Subscribers(ctx context.Context) ([]model.Subscriber, error)
	Reservations(ctx context.Context) ([]model.Reservation, error)
	UpdateReservation(ctx context.Context, r *model.Reservation) error
	CreateReservation(ctx context.Context, r *model.Reservation) (int64, error)

	Marker(ctx context.Context, job string) (model.MaintenanceMarker, bool, error)
	SaveMarker(ctx context.Context, m model.MaintenanceMarker) error

	PushSubscriptions(ctx context.Context) ([]model.PushSubscription, error)
	SavePushSubscription(ctx context.Context, sub *model.PushSubscription) error
	DeletePushSubscription(ctx context.Context, endpoint string) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Sessions(ctx context.Context) ([]model.ParkingSession, error) {
	var sessions []model.ParkingSession
	if err := s.db.WithContext(ctx).Order("session_id").Find(&sessions).Error; err != nil {
		return nil, &FetchError{Kind: KindSessions, Err: err}
	}
	return sessions, nil
}

func (s *gormStore) Spots(ctx context.Context) ([]model.ParkingSpot, error) {
	var spots []model.ParkingSpot
	if err := s.db.WithContext(ctx).Order("spot_id").Find(&spots).Error; err != nil {
		return nil, &FetchError{Kind: KindSpots, Err: err}
	}
	return spots, nil
}

func (s *gormStore) Subscribers(ctx context.Context) ([]model.Subscriber, error) {
	var subscribers []model.Subscriber
	if err := s.db.WithContext(ctx).Order("id").Find(&subscribers).Error; err != nil {
		return nil, &FetchError{Kind: KindSubscribers, Err: err}
	}
	return subscribers, nil
}

func (s *gormStore) Reservations(ctx context.Context) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := s.db.WithContext(ctx).Order("id").Find(&reservations).Error; err != nil {
		return nil, &FetchError{Kind: KindReservations, Err: err}
	}
	return reservations, nil
}

// UpdateReservation writes the mutable fields of r back, including a nil start time.
func (s *gormStore) UpdateReservation(ctx context.Context, r *model.Reservation) error {
	result := s.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("id = ?", r.ID).
		Updates(map[string]any{
			"spot_id":    r.SpotID,
			"date":       r.Date,
			"start_time": r.StartTime,
			"end_time":   r.EndTime,
			"code":       r.Code,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update reservation %d: %w", r.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update reservation %d: %w", r.ID, ErrReservationNotFound)
	}
	return nil
}

// CreateReservation inserts r and returns the id assigned by the database.
func (s *gormStore) CreateReservation(ctx context.Context, r *model.Reservation) (int64, error) {
	r.ID = 0
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return 0, fmt.Errorf("failed to create reservation: %w", err)
	}
	return r.ID, nil
}

// Marker returns the stored period marker for job, if any.
func (s *gormStore) Marker(ctx context.Context, job string) (model.MaintenanceMarker, bool, error) {
	var m model.MaintenanceMarker
	err := s.db.WithContext(ctx).Where("job = ?", job).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.MaintenanceMarker{}, false, nil
	}
	if err != nil {
		return model.MaintenanceMarker{}, false, fmt.Errorf("failed to load marker %q: %w", job, err)
	}
	return m, true, nil
}

// SaveMarker upserts the period marker keyed by its job name.
func (s *gormStore) SaveMarker(ctx context.Context, m model.MaintenanceMarker) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job"}},
		DoUpdates: clause.AssignmentColumns([]string{"year", "month", "day", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("failed to save marker %q: %w", m.Job, err)
	}
	return nil
}

func (s *gormStore) PushSubscriptions(ctx context.Context) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	if err := s.db.WithContext(ctx).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to load push subscriptions: %w", err)
	}
	return subs, nil
}

func (s *gormStore) SavePushSubscription(ctx context.Context, sub *model.PushSubscription) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
	}).Create(sub).Error
}

func (s *gormStore) DeletePushSubscription(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).Delete(&model.PushSubscription{Endpoint: endpoint}).Error
}
