package user

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Role represents a user's authorization level. It is a value object backed
// by the wire representation ("admin", "dispatcher", "driver"); no other
// value is accepted.
type Role string

const (
	// RoleAdmin may manage users and has full job and location visibility.
	RoleAdmin Role = "admin"

	// RoleDispatcher creates and assigns jobs and sees all driver locations.
	RoleDispatcher Role = "dispatcher"

	// RoleDriver works assigned jobs, reports its own location, and never
	// sees other drivers' positions.
	RoleDriver Role = "driver"
)

// getValidRoles returns the set of legal role values.
func getValidRoles() map[Role]struct{} {
	return map[Role]struct{}{
		RoleAdmin:      {},
		RoleDispatcher: {},
		RoleDriver:     {},
	}
}

// RoleFromString parses a role from its wire representation.
// Returns a ValidationError for any unknown value.
func RoleFromString(s string) (Role, error) {
	role := Role(s)
	if err := role.Validate(); err != nil {
		return "", err
	}
	return role, nil
}

// Validate checks that the role is one of the three legal values.
func (r Role) Validate() error {
	if _, ok := getValidRoles()[r]; !ok {
		return errs.NewValidationErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsAdmin reports whether the role is admin.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// IsDriver reports whether the role is driver.
func (r Role) IsDriver() bool {
	return r == RoleDriver
}

// CanManageJobs reports whether the role may create, fully update, and
// delete jobs. Drivers may only move the status of their own jobs.
func (r Role) CanManageJobs() bool {
	return r == RoleAdmin || r == RoleDispatcher
}

// CanSeeAllLocations reports whether the role may list driver positions.
// Drivers must never see their peers' locations.
func (r Role) CanSeeAllLocations() bool {
	return r == RoleAdmin || r == RoleDispatcher
}
