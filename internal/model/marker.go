package model

import "time"

// MaintenanceMarker is the last period a recurring job ran for.
// Day is zero for month-granular jobs.
type MaintenanceMarker struct {
	Job       string `gorm:"primaryKey;size:64"`
	Year      int    `gorm:"not null"`
	Month     int    `gorm:"not null"`
	Day       int    `gorm:"not null"`
	UpdatedAt time.Time
}
