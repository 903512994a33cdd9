// Package locationrepo persists the one-row-per-driver current-position
// table. There is no history: every report overwrites the driver's row.
package locationrepo

import (
	"time"

	"github.com/google/uuid"
)

// LocationDTO represents a driver's latest known position. The driver id is
// the primary key, which is what makes the upsert atomic per driver.
type LocationDTO struct {
	DriverID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Latitude  float64   `gorm:"not null"`
	Longitude float64   `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName specifies the database table name for location rows.
func (LocationDTO) TableName() string {
	return "driver_locations"
}
