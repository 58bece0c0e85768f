package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/osworks/service-orders/internal/core/domain"
)

// ctxUser extracts the authenticated user injected by the Auth
// middleware. Its presence proves the middleware ran; a handler reached
// without it is a wiring bug surfaced as 401.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

// ctxToken returns the raw bearer token stored by the Auth middleware.
func ctxToken(c echo.Context) (string, error) {
	token, _ := c.Get("token").(string)
	if token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return token, nil
}
