package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var ErrGetActiveLocationsQueryIsNotConstructed = errors.New(
	"GetActiveLocationsQuery must be created via NewGetActiveLocationsQuery constructor",
)

// defaultFreshnessMinutes is the cutoff for a location row to still count
// as active. Expiry is passive: stale rows stay in the table, they just
// stop appearing in results.
const defaultFreshnessMinutes = 60

// GetActiveLocationsQuery retrieves every driver position updated within
// the freshness window, joined with the driver's display name. Drivers may
// not run this query at all.
type GetActiveLocationsQuery struct { //nolint:recvcheck //using for validation
	actor ports.Claims
	since time.Duration

	guard guard.ConstructorGuard
}

// NewGetActiveLocationsQuery creates a query on behalf of the acting user.
// sinceMinutes bounds the freshness window; zero or negative falls back to
// the 60-minute default.
func NewGetActiveLocationsQuery(actor ports.Claims, sinceMinutes int) (GetActiveLocationsQuery, error) {
	if err := errors.Join(actor.UserID.Validate(), actor.Role.Validate()); err != nil {
		return GetActiveLocationsQuery{}, err
	}

	if sinceMinutes <= 0 {
		sinceMinutes = defaultFreshnessMinutes
	}

	return GetActiveLocationsQuery{
		actor: actor,
		since: time.Duration(sinceMinutes) * time.Minute,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveLocationsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveLocationsQueryIsNotConstructed)
}

// Actor returns the identity claims of the requesting user.
func (q GetActiveLocationsQuery) Actor() ports.Claims {
	return q.actor
}

// Since returns the freshness window.
func (q GetActiveLocationsQuery) Since() time.Duration {
	return q.since
}

// LocationResponse represents one driver's latest position in the read
// model.
type LocationResponse struct {
	DriverID   string    `json:"driver_id"`
	DriverName string    `json:"driver_name"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	UpdatedAt  time.Time `json:"updated_at"`
}
