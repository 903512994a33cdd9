package commands

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"
)

// UpdateUserCommandHandler handles account patches. Admins patch any field
// of any account; everyone else may only change their own display name and
// password. Role and active changes from a non-admin are rejected, not
// ignored, since silently dropping a privilege change would hide a mistake.
type UpdateUserCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewUpdateUserCommandHandler creates a handler for account patches.
func NewUpdateUserCommandHandler(uowFactory UserUoWFactory) UpdateUserCommandHandler {
	return UpdateUserCommandHandler{uowFactory: uowFactory}
}

// Handle processes the patch and returns the resulting read model.
func (h *UpdateUserCommandHandler) Handle(ctx context.Context, cmd UpdateUserCommand) (UserRecord, error) {
	if err := cmd.Validate(); err != nil {
		return UserRecord{}, err
	}

	actor := cmd.Actor()
	if !actor.Role.IsAdmin() {
		if !actor.UserID.IsEqual(cmd.UserID()) {
			return UserRecord{}, errs.NewAuthorizationError("update user")
		}
		if cmd.Patch().Role != nil || cmd.Patch().Active != nil {
			return UserRecord{}, errs.NewAuthorizationError("update user")
		}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UserRecord{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.UserRepository().Get(ctx, cmd.UserID())
	if err != nil {
		return UserRecord{}, err
	}

	if err = applyUserPatch(aggregate, cmd.Patch()); err != nil {
		return UserRecord{}, err
	}

	if err = uow.UserRepository().Update(ctx, aggregate); err != nil {
		return UserRecord{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UserRecord{}, err
	}

	return NewUserRecord(aggregate), nil
}

func applyUserPatch(aggregate *user.User, patch UserPatch) error {
	if patch.Name != nil {
		if err := aggregate.Rename(*patch.Name); err != nil {
			return err
		}
	}
	if patch.Role != nil {
		if err := aggregate.ChangeRole(*patch.Role); err != nil {
			return err
		}
	}
	if patch.Active != nil {
		aggregate.SetActive(*patch.Active)
	}
	if patch.Password != nil {
		if *patch.Password == "" {
			return errs.NewValueIsRequiredError("password")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := aggregate.ChangePasswordHash(string(hash)); err != nil {
			return err
		}
	}

	return nil
}
