package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/osworks/service-orders/internal/api/metrics"
	"github.com/osworks/service-orders/internal/core/domain"
	"github.com/osworks/service-orders/internal/core/ports"
)

// AuthHandler exposes login, logout, and identity endpoints.
type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login authenticates credentials and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		default:
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
		ExpiresIn:   result.ExpiresIn,
		User:        toUserResponse(result.User),
	})
}

// Logout revokes the presented token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	metrics.TokenRevocationsTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Me returns the identity behind the presented token.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Verify confirms the presented token is currently valid.
//
// @Summary      Verify token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  verifyResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, verifyResponse{Valid: true, Username: user.Username})
}
