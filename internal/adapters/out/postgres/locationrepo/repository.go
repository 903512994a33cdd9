package locationrepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/model/kernel"
)

// GormLocationRepository implements LocationRepository using GORM.
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GORM location repository.
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// Upsert inserts or overwrites the driver's single location row using
// ON CONFLICT (driver_id) DO UPDATE. Concurrent reports for the same driver
// serialize on the row; the last write wins and exactly one row remains.
func (r *GormLocationRepository) Upsert(ctx context.Context, driverID kernel.UUID, position geo.Coordinates) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if err := position.Validate(); err != nil {
		return err
	}

	dto := LocationDTO{
		DriverID:  driverID.Bytes(),
		Latitude:  position.Latitude(),
		Longitude: position.Longitude(),
		UpdatedAt: time.Now().UTC(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "driver_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "updated_at"}),
		}).
		Create(&dto).Error
}
