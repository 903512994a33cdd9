package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch/internal/pkg/errs"
)

// GetActiveLocationsQueryHandler retrieves fresh driver positions. A row
// exactly at the cutoff is excluded; one second inside it is included.
type GetActiveLocationsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveLocationsQueryHandler creates a handler for location list
// queries.
func NewGetActiveLocationsQueryHandler(db *gorm.DB) GetActiveLocationsQueryHandler {
	return GetActiveLocationsQueryHandler{db: db}
}

// Handle executes the query. Drivers are denied regardless of parameters.
func (h GetActiveLocationsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveLocationsQuery,
) ([]LocationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if !query.Actor().Role.CanSeeAllLocations() {
		return nil, errs.NewAuthorizationError("get locations")
	}

	cutoff := time.Now().UTC().Add(-query.Since())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.driver_id,
			u.name,
			l.latitude,
			l.longitude,
			l.updated_at
		FROM driver_locations l
		JOIN users u ON u.id = l.driver_id
		WHERE l.updated_at > ?
		ORDER BY u.name
	`, cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]LocationResponse, 0)
	for rows.Next() {
		var (
			response LocationResponse
			driverID uuid.UUID
		)

		err = rows.Scan(
			&driverID,
			&response.DriverName,
			&response.Latitude,
			&response.Longitude,
			&response.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		response.DriverID = driverID.String()
		locations = append(locations, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return locations, nil
}
