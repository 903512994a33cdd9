// Package geo provides the Coordinates value object representing a driver's
// position on the map.
package geo

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MinLatitude is the southernmost valid latitude in degrees.
	MinLatitude = -90.0
	// MaxLatitude is the northernmost valid latitude in degrees.
	MaxLatitude = 90.0
	// MinLongitude is the westernmost valid longitude in degrees.
	MinLongitude = -180.0
	// MaxLongitude is the easternmost valid longitude in degrees.
	MaxLongitude = 180.0
)

// ErrCoordinatesAreNotConstructed is returned when attempting to use an
// improperly initialized Coordinates value. Coordinates must be created via
// NewCoordinates.
var ErrCoordinatesAreNotConstructed = errs.NewValueIsRequiredError(
	"coordinates must be created via NewCoordinates constructor")

// Coordinates is an immutable value object holding a validated WGS84
// latitude/longitude pair. The zero value is invalid and fails validation;
// use the constructor to create instances.
//
// Example:
//
//	pos, err := geo.NewCoordinates(59.437, 24.7536)
//	if err != nil {
//	    // handle validation error
//	}
type Coordinates struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewCoordinates creates Coordinates with the given latitude and longitude
// in decimal degrees. Latitude must be within [-90, 90] and longitude within
// [-180, 180]; out-of-range values yield a ValidationError.
func NewCoordinates(latitude, longitude float64) (Coordinates, error) {
	coords := Coordinates{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(coords.setLatitude(latitude), coords.setLongitude(longitude)); err != nil {
		return Coordinates{}, err
	}

	return coords, nil
}

// Validate checks that the Coordinates value was created through the
// constructor. The zero value fails.
func (c Coordinates) Validate() error {
	return c.guard.Validate(ErrCoordinatesAreNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (c Coordinates) Latitude() float64 {
	return c.latitude
}

// Longitude returns the longitude in decimal degrees.
func (c Coordinates) Longitude() float64 {
	return c.longitude
}

// String implements fmt.Stringer, formatting the pair to six decimal places
// for logs.
func (c Coordinates) String() string {
	return fmt.Sprintf("Coordinates(%.6f,%.6f)", c.latitude, c.longitude)
}

// IsEqual compares two coordinate pairs for exact equality. Both values must
// be properly constructed for the comparison to succeed.
func (c Coordinates) IsEqual(other Coordinates) (bool, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return c == other, nil
}

// setLatitude sets the latitude with range validation.
// Note: pointer receiver is intentional for self-encapsulated validation
// during construction, while the public API uses value receivers.
func (c *Coordinates) setLatitude(latitude float64) error {
	if latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValidationErrorWithCause("latitude",
			fmt.Errorf("%f is not within range %g..%g", latitude, MinLatitude, MaxLatitude))
	}

	c.latitude = latitude
	return nil
}

// setLongitude sets the longitude with range validation.
func (c *Coordinates) setLongitude(longitude float64) error {
	if longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValidationErrorWithCause("longitude",
			fmt.Errorf("%f is not within range %g..%g", longitude, MinLongitude, MaxLongitude))
	}

	c.longitude = longitude
	return nil
}
