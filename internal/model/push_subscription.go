package model

import "time"

// PushSubscription holds an administrator's browser push subscription.
// Every subscription is notified when a report artifact is published.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}
