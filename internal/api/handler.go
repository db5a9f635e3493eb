package api

import (
	"context"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"parking-maintenance-backend/internal/model"
	"parking-maintenance-backend/internal/report"
	"parking-maintenance-backend/internal/reservation"
	"parking-maintenance-backend/internal/store"
)

// ReportGenerator builds reports on demand.
type ReportGenerator interface {
	Monthly(ctx context.Context, p report.Period) (string, error)
	Snapshot(ctx context.Context, day time.Time) (string, error)
}

// ReservationCreator validates and stores new reservations.
type ReservationCreator interface {
	Create(ctx context.Context, req reservation.Request, now time.Time) (model.Reservation, error)
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store        store.Store
	webpush      *webpush.Options
	reports      *report.Publisher
	generator    ReportGenerator
	reservations ReservationCreator
	loc          *time.Location
	now          func() time.Time
}

// NewHandler creates a new API handler. Dates in requests are read in loc.
func NewHandler(s store.Store, webpushOptions *webpush.Options, reports *report.Publisher,
	generator ReportGenerator, reservations ReservationCreator, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		store:        s,
		webpush:      webpushOptions,
		reports:      reports,
		generator:    generator,
		reservations: reservations,
		loc:          loc,
		now:          time.Now,
	}
}
