package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
)

// Claims is the identity a validated credential carries: who the caller is
// and the single role that drives every authorization decision.
type Claims struct {
	UserID kernel.UUID
	Role   user.Role
}

// Authenticator is the external credential validator. The core never issues
// or inspects credentials itself; it hands the opaque token to this port and
// receives identity claims or an AuthError.
type Authenticator interface {
	// ValidateCredential checks the opaque token and returns the identity
	// claims it encodes. A missing, malformed, or expired token yields an
	// AuthError; no session or request proceeds without valid claims.
	ValidateCredential(ctx context.Context, token string) (Claims, error)
}
