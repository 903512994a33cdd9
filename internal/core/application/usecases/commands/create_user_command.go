package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateUserCommandIsNotConstructed = errors.New(
	"CreateUserCommand must be created via NewCreateUserCommand constructor",
)

// CreateUserCommand represents an admin creating a user account. Username,
// password, display name, and role are all required. The password arrives in
// clear text and is hashed by the handler; it is never persisted or logged
// as given.
type CreateUserCommand struct { //nolint:recvcheck //using for validation
	actor    ports.Claims
	userID   kernel.UUID
	username string
	password string
	name     string
	role     user.Role

	guard guard.ConstructorGuard
}

// NewCreateUserCommand creates a command to register a new user on behalf
// of the acting admin.
func NewCreateUserCommand(
	actor ports.Claims,
	userID kernel.UUID,
	username, password, name string,
	role user.Role,
) (CreateUserCommand, error) {
	cmd := CreateUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setUserID(userID),
		cmd.setUsername(username),
		cmd.setPassword(password),
		cmd.setName(name),
		cmd.setRole(role),
	); err != nil {
		return CreateUserCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateUserCommand) Validate() error {
	return c.guard.Validate(ErrCreateUserCommandIsNotConstructed)
}

// Actor returns the identity claims of the requesting user.
func (c CreateUserCommand) Actor() ports.Claims {
	return c.actor
}

// UserID returns the identifier the new account will carry.
func (c CreateUserCommand) UserID() kernel.UUID {
	return c.userID
}

// Username returns the unique login name.
func (c CreateUserCommand) Username() string {
	return c.username
}

// Password returns the clear-text password to hash.
func (c CreateUserCommand) Password() string {
	return c.password
}

// Name returns the display name.
func (c CreateUserCommand) Name() string {
	return c.name
}

// Role returns the account's role.
func (c CreateUserCommand) Role() user.Role {
	return c.role
}

func (c *CreateUserCommand) setActor(actor ports.Claims) error {
	if err := errors.Join(actor.UserID.Validate(), actor.Role.Validate()); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateUserCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *CreateUserCommand) setUsername(username string) error {
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}

	c.username = username
	return nil
}

func (c *CreateUserCommand) setPassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}

	c.password = password
	return nil
}

func (c *CreateUserCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *CreateUserCommand) setRole(role user.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}
