package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateUserCommandIsNotConstructed = errors.New(
	"UpdateUserCommand must be created via NewUpdateUserCommand constructor",
)

// UserPatch carries the account fields an update request wants to change.
// A nil pointer means "leave unchanged".
type UserPatch struct {
	Name     *string
	Role     *user.Role
	Active   *bool
	Password *string
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Role == nil && p.Active == nil && p.Password == nil
}

// UpdateUserCommand represents a request to patch a user account. Admins
// patch anything on anyone; a non-admin may only change their own display
// name and password.
type UpdateUserCommand struct { //nolint:recvcheck //using for validation
	actor  ports.Claims
	userID kernel.UUID
	patch  UserPatch

	guard guard.ConstructorGuard
}

// NewUpdateUserCommand creates a command to patch the given account on
// behalf of the acting user.
func NewUpdateUserCommand(actor ports.Claims, userID kernel.UUID, patch UserPatch) (UpdateUserCommand, error) {
	cmd := UpdateUserCommand{
		patch: patch,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setUserID(userID),
		cmd.setPatch(patch),
	); err != nil {
		return UpdateUserCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateUserCommand) Validate() error {
	return c.guard.Validate(ErrUpdateUserCommandIsNotConstructed)
}

// Actor returns the identity claims of the requesting user.
func (c UpdateUserCommand) Actor() ports.Claims {
	return c.actor
}

// UserID returns the identifier of the account to patch.
func (c UpdateUserCommand) UserID() kernel.UUID {
	return c.userID
}

// Patch returns the requested field changes.
func (c UpdateUserCommand) Patch() UserPatch {
	return c.patch
}

func (c *UpdateUserCommand) setActor(actor ports.Claims) error {
	if err := errors.Join(actor.UserID.Validate(), actor.Role.Validate()); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *UpdateUserCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *UpdateUserCommand) setPatch(patch UserPatch) error {
	if patch.Role != nil {
		if err := patch.Role.Validate(); err != nil {
			return err
		}
	}

	return nil
}
