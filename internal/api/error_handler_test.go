package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/osworks/service-orders/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error envelope: %v", err)
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrTokenInvalid, http.StatusUnauthorized, "invalid or expired token"},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too many login attempts"},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{domain.ErrUserExists, http.StatusConflict, "username or email already exists"},
		{domain.ErrSelfDelete, http.StatusBadRequest, "cannot delete own account"},
		{domain.ErrOrderNotFound, http.StatusNotFound, "service order not found"},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity, "invalid status transition"},
		{domain.ErrEquipmentExists, http.StatusConflict, "serial number already exists"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "file too large"},
	}

	for _, tc := range cases {
		code, msg := renderError(t, tc.err)
		if code != tc.wantCode || msg != tc.wantMsg {
			t.Errorf("%v: got (%d, %q), want (%d, %q)", tc.err, code, msg, tc.wantCode, tc.wantMsg)
		}
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("revoke token: %w", domain.ErrTokenInvalid)
	code, msg := renderError(t, wrapped)
	if code != http.StatusUnauthorized || msg != "invalid or expired token" {
		t.Fatalf("wrapped error not unwrapped: (%d, %q)", code, msg)
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusForbidden, "insufficient privileges"))
	if code != http.StatusForbidden || msg != "insufficient privileges" {
		t.Fatalf("echo error passthrough broken: (%d, %q)", code, msg)
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	code, msg := renderError(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	// Internal details never leak to the client.
	if msg != "internal server error" {
		t.Fatalf("leaked internal error: %q", msg)
	}
}
