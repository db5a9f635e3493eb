// Package maintenance runs the recurring jobs of the facility: expiring stale
// reservations once a day and producing the monthly report once a month.
package maintenance

import (
	"context"
	"errors"
	"log"
	"time"

	"parking-maintenance-backend/config"
	"parking-maintenance-backend/internal/expiry"
	"parking-maintenance-backend/internal/model"
	"parking-maintenance-backend/internal/report"
)

// Marker job names.
const (
	JobExpiry  = "expiry"
	JobMonthly = "monthly-report"
)

// Store is what the scheduler needs from the data store.
type Store interface {
	expiry.Store
	Marker(ctx context.Context, job string) (model.MaintenanceMarker, bool, error)
	SaveMarker(ctx context.Context, m model.MaintenanceMarker) error
}

// Reporter produces the report of a month.
type Reporter interface {
	Monthly(ctx context.Context, p report.Period) (string, error)
}

// Service wakes on a fixed interval and decides which jobs are due. It is the
// only writer of the period markers.
type Service struct {
	cfg      *config.Config
	store    Store
	reporter Reporter
	now      func() time.Time

	lastExpired  report.Period
	lastReported report.Period
}

// NewService creates a scheduler. The clock defaults to time.Now.
func NewService(cfg *config.Config, store Store, reporter Reporter) *Service {
	return &Service{cfg: cfg, store: store, reporter: reporter, now: time.Now}
}

// SetClock replaces the wall clock, for tests and simulations.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Run loads the markers, ticks once, and then ticks on every interval
// boundary until ctx is done. A tick in progress when ctx is canceled runs to completion.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Maintenance.Enabled {
		log.Println("Maintenance scheduler is disabled. Not starting.")
		return
	}
	log.Printf("Starting maintenance scheduler (interval %v, daily window %v)...",
		s.cfg.Maintenance.Interval, s.cfg.Maintenance.DailyWindow)

	s.LoadMarkers(ctx)
	next := s.now()
	s.Tick(ctx)

	next = s.nextWake(next)
	timer := time.NewTimer(next.Sub(s.now()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Maintenance scheduler shutting down.")
			return
		case <-timer.C:
			s.Tick(ctx)
			next = s.nextWake(next)
			timer.Reset(next.Sub(s.now()))
		}
	}
}

// nextWake returns the wake-up deadline following prev. Deadlines advance by
// exactly one interval, so time spent in a tick does not push later wake-ups
// out of the daily window. A tick that overran its slot wakes immediately.
func (s *Service) nextWake(prev time.Time) time.Time {
	next := prev.Add(s.cfg.Maintenance.Interval)
	if now := s.now(); next.Before(now) {
		return now
	}
	return next
}

// LoadMarkers restores the last-run periods from the store. When the store
// cannot be read the scheduler keeps in-memory state only.
func (s *Service) LoadMarkers(ctx context.Context) {
	if m, ok := s.loadMarker(ctx, JobExpiry); ok {
		s.lastExpired = report.Period{Year: m.Year, Month: time.Month(m.Month), Day: m.Day}
	}
	if m, ok := s.loadMarker(ctx, JobMonthly); ok {
		s.lastReported = report.Period{Year: m.Year, Month: time.Month(m.Month)}
	}
}

func (s *Service) loadMarker(ctx context.Context, job string) (model.MaintenanceMarker, bool) {
	m, found, err := s.store.Marker(ctx, job)
	if err != nil {
		log.Printf("Warning: could not load %s marker: %v. Using in-memory state; a restart may run the job again.", job, err)
		return model.MaintenanceMarker{}, false
	}
	return m, found
}

// Tick performs one wake-up: the daily check, then the monthly check.
// Jobs run detached from ctx's cancellation.
func (s *Service) Tick(ctx context.Context) {
	jobCtx := context.WithoutCancel(ctx)
	now := s.now().In(s.location())

	s.checkDaily(jobCtx, now)
	s.checkMonthly(jobCtx, now)
}

func (s *Service) location() *time.Location {
	if loc := s.cfg.Maintenance.Location; loc != nil {
		return loc
	}
	return time.Local
}

// inDailyWindow reports whether now falls in [midnight, midnight+window).
func (s *Service) inDailyWindow(now time.Time) bool {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return now.Before(midnight.Add(s.cfg.Maintenance.DailyWindow))
}

func (s *Service) checkDaily(ctx context.Context, now time.Time) {
	today := report.DayOf(now)
	if !s.inDailyWindow(now) || s.lastExpired == today {
		return
	}

	log.Printf("Running reservation expiry for %s...", now.Format("2006-01-02"))
	_, err := expiry.Expire(ctx, s.store, now)
	var partial *expiry.PartialWriteError
	switch {
	case errors.As(err, &partial):
		log.Printf("Reservation expiry finished with failures: %v", err)
	case err != nil:
		// Nothing was written; the next wake-up in the window retries.
		log.Printf("Reservation expiry aborted: %v", err)
		return
	}

	s.lastExpired = today
	s.saveMarker(ctx, model.MaintenanceMarker{Job: JobExpiry, Year: today.Year, Month: int(today.Month), Day: today.Day})
}

func (s *Service) checkMonthly(ctx context.Context, now time.Time) {
	current := report.MonthOf(now)
	if s.lastReported == current {
		return
	}

	target := current.Previous()
	log.Printf("Generating monthly report for %s...", target.Label())
	if name, err := s.reporter.Monthly(ctx, target); err != nil {
		log.Printf("Monthly report for %s failed and will not be retried this month: %v", target.Label(), err)
	} else {
		log.Printf("Monthly report %s published", name)
	}

	// Recorded regardless of the outcome so a permanent failure does not
	// turn every wake-up into a retry.
	s.lastReported = current
	s.saveMarker(ctx, model.MaintenanceMarker{Job: JobMonthly, Year: current.Year, Month: int(current.Month)})
}

func (s *Service) saveMarker(ctx context.Context, m model.MaintenanceMarker) {
	m.UpdatedAt = s.now()
	if err := s.store.SaveMarker(ctx, m); err != nil {
		log.Printf("Warning: could not persist %s marker: %v. A restart may run the job again.", m.Job, err)
	}
}
