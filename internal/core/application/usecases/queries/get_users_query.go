package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var ErrGetUsersQueryIsNotConstructed = errors.New(
	"GetUsersQuery must be created via NewGetUsersQuery constructor",
)

// GetUsersQuery retrieves every user account. Admin only; the read model
// never carries password hashes.
type GetUsersQuery struct { //nolint:recvcheck //using for validation
	actor ports.Claims

	guard guard.ConstructorGuard
}

// NewGetUsersQuery creates a query on behalf of the acting user.
func NewGetUsersQuery(actor ports.Claims) (GetUsersQuery, error) {
	if err := errors.Join(actor.UserID.Validate(), actor.Role.Validate()); err != nil {
		return GetUsersQuery{}, err
	}

	return GetUsersQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUsersQuery) Validate() error {
	return q.guard.Validate(ErrGetUsersQueryIsNotConstructed)
}

// Actor returns the identity claims of the requesting user.
func (q GetUsersQuery) Actor() ports.Claims {
	return q.actor
}

// UserResponse represents a user account in the read model.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
