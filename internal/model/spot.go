package model

// SpotStatus is the occupancy state of a parking spot.
type SpotStatus string

const (
	SpotFree     SpotStatus = "FREE"
	SpotOccupied SpotStatus = "OCCUPIED"
	SpotReserved SpotStatus = "RESERVED"
)

// ParkingSpot represents a single spot in the facility.
type ParkingSpot struct {
	SpotID int64      `gorm:"primaryKey"`
	Status SpotStatus `gorm:"size:16;not null;default:FREE"`
}
