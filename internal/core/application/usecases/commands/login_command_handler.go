package commands

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// LoginResponse carries the issued bearer token and the authenticated
// account's read model.
type LoginResponse struct {
	Token string     `json:"token"`
	User  UserRecord `json:"user"`
}

// LoginCommandHandler verifies a username/password pair against the stored
// bcrypt hash and issues a bearer token. An unknown username, a wrong
// password, and a deactivated account all fail with the same AuthError, so
// a caller cannot probe which usernames exist.
type LoginCommandHandler struct {
	uowFactory UserUoWFactory
	issuer     TokenIssuer
}

// NewLoginCommandHandler creates a handler for credential issuance.
func NewLoginCommandHandler(uowFactory UserUoWFactory, issuer TokenIssuer) LoginCommandHandler {
	return LoginCommandHandler{
		uowFactory: uowFactory,
		issuer:     issuer,
	}
}

// Handle verifies the credentials and returns a token plus the account.
func (h *LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (LoginResponse, error) {
	if err := cmd.Validate(); err != nil {
		return LoginResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return LoginResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.UserRepository().GetByUsername(ctx, cmd.Username())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return LoginResponse{}, errs.NewAuthError("invalid credentials")
		}
		return LoginResponse{}, err
	}

	if !aggregate.IsActive() {
		return LoginResponse{}, errs.NewAuthError("invalid credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(aggregate.PasswordHash()), []byte(cmd.Password())) != nil {
		return LoginResponse{}, errs.NewAuthError("invalid credentials")
	}

	if err = uow.Commit(ctx); err != nil {
		return LoginResponse{}, err
	}

	token, err := h.issuer.IssueCredential(ctx, ports.Claims{
		UserID: aggregate.ID(),
		Role:   aggregate.Role(),
	})
	if err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{Token: token, User: NewUserRecord(aggregate)}, nil
}
