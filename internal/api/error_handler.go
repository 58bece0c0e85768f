package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/osworks/service-orders/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors have deterministic HTTP codes. The credential
	// message stays generic on purpose: it never reveals which half of
	// the credentials was wrong, and revoked, expired, and forged tokens
	// are indistinguishable to the caller.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, "invalid or expired token"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "too many login attempts"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "username or email already exists"
	case errors.Is(err, domain.ErrSelfDelete):
		return http.StatusBadRequest, "cannot delete own account"
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, "service order not found"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound, "client not found"
	case errors.Is(err, domain.ErrEquipmentNotFound):
		return http.StatusNotFound, "equipment not found"
	case errors.Is(err, domain.ErrEquipmentExists):
		return http.StatusConflict, "serial number already exists"
	case errors.Is(err, domain.ErrChecklistNotFound):
		return http.StatusNotFound, "checklist not found"
	case errors.Is(err, domain.ErrChecklistItemNotFound):
		return http.StatusNotFound, "checklist item not found"
	case errors.Is(err, domain.ErrPhotoNotFound):
		return http.StatusNotFound, "photo not found"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "unsupported file type"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "file too large"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
