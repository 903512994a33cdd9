package jwtauth

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the JWT payload: standard registered claims plus the role.
// The user ID travels in the Subject field.
type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator issues and validates HMAC-signed bearer tokens. It serves
// both sides of the credential lifecycle: the login flow asks it to issue,
// every authenticated request asks it to validate.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
}

func NewAuthenticator(secret string, ttl time.Duration) (*Authenticator, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("secret")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsRequiredError("ttl")
	}
	return &Authenticator{secret: []byte(secret), ttl: ttl}, nil
}

// IssueCredential signs a token carrying the claims. The token expires after
// the configured TTL.
func (a *Authenticator) IssueCredential(_ context.Context, claims ports.Claims) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Role: string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", errs.NewAuthErrorWithCause("could not sign token", err)
	}
	return signed, nil
}

// ValidateCredential parses and verifies the token. Any defect, from a bad
// signature to an expired claim, maps to a single AuthError so callers never
// learn why a token was rejected.
func (a *Authenticator) ValidateCredential(_ context.Context, token string) (ports.Claims, error) {
	if token == "" {
		return ports.Claims{}, errs.NewAuthError("missing credential")
	}

	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return ports.Claims{}, errs.NewAuthErrorWithCause("invalid credential", err)
	}

	userID, err := kernel.UUIDFromString(parsed.Subject)
	if err != nil {
		return ports.Claims{}, errs.NewAuthErrorWithCause("invalid credential", err)
	}

	role, err := user.RoleFromString(parsed.Role)
	if err != nil {
		return ports.Claims{}, errs.NewAuthErrorWithCause("invalid credential", err)
	}

	return ports.Claims{UserID: userID, Role: role}, nil
}
