package reservation

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"parking-maintenance-backend/internal/model"
)

// Creator persists a new reservation and returns its assigned id.
type Creator interface {
	CreateReservation(ctx context.Context, r *model.Reservation) (int64, error)
}

// Request carries the fields a subscriber submits when booking a spot.
type Request struct {
	SubscriberID int64
	SpotID       int64
	Date         time.Time
	StartTime    string
	EndTime      string
}

// Service validates and stores new reservations.
type Service struct {
	store   Creator
	newCode func() int
}

// NewService creates a reservation service backed by store.
func NewService(store Creator) *Service {
	return &Service{
		store:   store,
		newCode: func() int { return 100000 + rand.Intn(900000) },
	}
}

// Create validates req against now and persists it. Validation failures are
// returned as *ValidationError and nothing is written.
func (s *Service) Create(ctx context.Context, req Request, now time.Time) (model.Reservation, error) {
	if err := Validate(req.Date, req.StartTime, req.EndTime, now); err != nil {
		return model.Reservation{}, err
	}

	start, end := req.StartTime, req.EndTime
	r := model.Reservation{
		SubscriberID: req.SubscriberID,
		SpotID:       req.SpotID,
		Date:         model.CivilDate(req.Date),
		StartTime:    &start,
		EndTime:      &end,
		Code:         s.newCode(),
	}

	id, err := s.store.CreateReservation(ctx, &r)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("create reservation for subscriber %d: %w", req.SubscriberID, err)
	}
	r.ID = id
	log.Printf("Reservation %d created for subscriber %d on spot %d (%s %s-%s)",
		r.ID, r.SubscriberID, r.SpotID, r.Date.Format("2006-01-02"), start, end)
	return r, nil
}
