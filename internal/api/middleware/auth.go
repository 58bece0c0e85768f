package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/osworks/service-orders/internal/core/domain"
)

// Authenticator resolves a bearer token to an active user. Implemented by
// the auth service; the middleware never touches the token store or the
// signing key directly.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Auth extracts the bearer token, authenticates it, and injects the
// resolved user into the echo context under "user", plus "user_id",
// "username", and "role" for convenience. The raw token is stored under
// "token" so the logout handler can revoke it.
func Auth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set("user", user)
			c.Set("user_id", user.ID)
			c.Set("username", user.Username)
			c.Set("role", user.Role)
			c.Set("token", token)

			return next(c)
		}
	}
}

// bearerToken pulls the token out of the Authorization header.
func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
