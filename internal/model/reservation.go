package model

import "time"

// Reservation is a subscriber's booking of a spot on a given day.
// A nil StartTime marks the reservation as canceled.
type Reservation struct {
	ID           int64     `gorm:"primaryKey"`
	SubscriberID int64     `gorm:"index;not null"`
	SpotID       int64     `gorm:"index;not null"`
	Date         time.Time `gorm:"type:date;index;not null"`
	StartTime    *string   `gorm:"size:5"`
	EndTime      *string   `gorm:"size:5"`
	Code         int       `gorm:"not null"`
}

// Canceled reports whether the reservation carries the tombstone marker.
func (r Reservation) Canceled() bool {
	return r.StartTime == nil
}

// Stale reports whether the reservation's day has passed while it is still live.
func (r Reservation) Stale(today time.Time) bool {
	return r.StartTime != nil && CivilDate(r.Date).Before(CivilDate(today))
}

// CivilDate strips the clock from t, keeping its calendar day, and returns
// midnight UTC of that day so dates compare independently of location.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
