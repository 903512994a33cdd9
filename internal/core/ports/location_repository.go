package ports

import (
	"context"

	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/model/kernel"
)

// LocationRepository defines the persistence contract for the
// one-row-per-driver current-position table.
type LocationRepository interface {
	// Upsert inserts or overwrites the single location row for the given
	// driver. The upsert is atomic per driver row, so two concurrent
	// reports for the same driver never produce a second row or a lost
	// update.
	Upsert(ctx context.Context, driverID kernel.UUID, position geo.Coordinates) error
}
