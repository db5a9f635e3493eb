package model

// Subscriber is a registered user of the facility.
type Subscriber struct {
	ID       int64  `gorm:"primaryKey"`
	Name     string `gorm:"size:128;not null"`
	Phone    string `gorm:"size:32"`
	Email    string `gorm:"size:256"`
	Role     string `gorm:"size:32;not null;default:subscriber"`
	LoggedIn bool   `gorm:"not null;default:false"`
	History  string `gorm:"type:text"`
}
