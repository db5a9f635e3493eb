package model

import "time"

// ParkingSession records one vehicle's stay at a spot.
type ParkingSession struct {
	SessionID    int64      `gorm:"primaryKey"`
	SubscriberID int64      `gorm:"index;not null"`
	SpotID       int64      `gorm:"index;not null"`
	ParkingCode  int        `gorm:"not null"`
	InTime       time.Time  `gorm:"index;not null"`
	OutTime      *time.Time
	Extended     bool `gorm:"not null;default:false"`
	Late         bool `gorm:"not null;default:false"`
	Active       bool `gorm:"not null;default:false"`
}
