package http

import (
	"net/http"
	"strings"

	"dispatch/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// AuthMiddleware validates the bearer token on every request and stores the
// resulting claims in the echo context for handlers to read.
func AuthMiddleware(authenticator ports.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := bearerToken(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing credential",
				})
			}

			claims, err := authenticator.ValidateCredential(ctx.Request().Context(), token)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid credential",
				})
			}

			ctx.Set(actorContextKey, claims)
			return next(ctx)
		}
	}
}

// ActorFromContext returns the claims stored by AuthMiddleware.
func ActorFromContext(ctx echo.Context) (ports.Claims, bool) {
	claims, ok := ctx.Get(actorContextKey).(ports.Claims)
	return claims, ok
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
