package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"parking-maintenance-backend/internal/model"
)

// Source is the read side of the data store used to build reports.
type Source interface {
	Sessions(ctx context.Context) ([]model.ParkingSession, error)
	Spots(ctx context.Context) ([]model.ParkingSpot, error)
	Subscribers(ctx context.Context) ([]model.Subscriber, error)
	Reservations(ctx context.Context) ([]model.Reservation, error)
}

// DayStats are the per-day counts of a month.
type DayStats struct {
	Day      int
	Sessions int
	Used     int
	Canceled int
}

// Data is everything a monthly report is built from. Sessions and
// Reservations are filtered to the period; Spots and Subscribers are the full
// reference collections that key the zero-filled maps.
type Data struct {
	Period       Period
	Sessions     []model.ParkingSession
	Reservations []model.Reservation
	Spots        []model.ParkingSpot
	Subscribers  []model.Subscriber

	Days                   []DayStats
	SessionsPerSpot        map[int64]int
	LateExitsPerSubscriber map[int64]int
}

// Aggregate fetches the four collections and computes the period's statistics.
// Session days are taken from InTime in loc, and the returned sessions carry
// their times converted to loc. Any fetch failure aborts the
// aggregation; no partial data is returned. The four fetches are independent
// reads, so the result is a best-effort snapshot.
func Aggregate(ctx context.Context, src Source, p Period, loc *time.Location) (*Data, error) {
	sessions, err := src.Sessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", p.Label(), err)
	}
	spots, err := src.Spots(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", p.Label(), err)
	}
	subscribers, err := src.Subscribers(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", p.Label(), err)
	}
	reservations, err := src.Reservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", p.Label(), err)
	}

	return compute(p, loc, sessions, spots, subscribers, reservations), nil
}

func compute(p Period, loc *time.Location, sessions []model.ParkingSession, spots []model.ParkingSpot,
	subscribers []model.Subscriber, reservations []model.Reservation) *Data {
	month := Period{Year: p.Year, Month: p.Month}
	data := &Data{
		Period:                 p,
		Spots:                  spots,
		Subscribers:            subscribers,
		Days:                   make([]DayStats, month.DaysInMonth()),
		SessionsPerSpot:        make(map[int64]int, len(spots)),
		LateExitsPerSubscriber: make(map[int64]int, len(subscribers)),
	}
	for i := range data.Days {
		data.Days[i].Day = i + 1
	}
	for _, spot := range spots {
		data.SessionsPerSpot[spot.SpotID] = 0
	}
	for _, sub := range subscribers {
		data.LateExitsPerSubscriber[sub.ID] = 0
	}

	for _, s := range sessions {
		if !month.Contains(s.InTime, loc) {
			continue
		}
		// Rows show the same wall clock the day buckets use.
		s.InTime = s.InTime.In(loc)
		if s.OutTime != nil {
			out := s.OutTime.In(loc)
			s.OutTime = &out
		}
		data.Sessions = append(data.Sessions, s)
		data.Days[s.InTime.Day()-1].Sessions++
		data.SessionsPerSpot[s.SpotID]++
		if s.Late {
			data.LateExitsPerSubscriber[s.SubscriberID]++
		}
	}

	for _, r := range reservations {
		y, m, d := r.Date.Date()
		if y != p.Year || m != p.Month {
			continue
		}
		data.Reservations = append(data.Reservations, r)
		if r.Canceled() {
			data.Days[d-1].Canceled++
		} else {
			data.Days[d-1].Used++
		}
	}
	return data
}

// TotalSessions is the number of sessions that started in the period.
func (d *Data) TotalSessions() int {
	return len(d.Sessions)
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys(m map[int64]int) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
