package commands

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"
)

// CreateUserCommandHandler handles user account creation. Admin only.
// Passwords are bcrypt-hashed before they reach the repository; a duplicate
// username surfaces as a ConflictError from the store.
type CreateUserCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewCreateUserCommandHandler creates a handler for user creation.
func NewCreateUserCommandHandler(uowFactory UserUoWFactory) CreateUserCommandHandler {
	return CreateUserCommandHandler{uowFactory: uowFactory}
}

// Handle processes the command and returns the created account's read model.
func (h *CreateUserCommandHandler) Handle(ctx context.Context, cmd CreateUserCommand) (UserRecord, error) {
	if err := cmd.Validate(); err != nil {
		return UserRecord{}, err
	}

	if !cmd.Actor().Role.IsAdmin() {
		return UserRecord{}, errs.NewAuthorizationError("create user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password()), bcrypt.DefaultCost)
	if err != nil {
		return UserRecord{}, err
	}

	aggregate, err := user.NewUser(cmd.UserID(), cmd.Username(), string(hash), cmd.Name(), cmd.Role())
	if err != nil {
		return UserRecord{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return UserRecord{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, aggregate); err != nil {
		return UserRecord{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UserRecord{}, err
	}

	return NewUserRecord(aggregate), nil
}
