package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/osworks/service-orders/internal/core/domain"
)

func TestRBAC_AllowedRole(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", domain.RoleAdmin)

	called := false
	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called for allowed role")
	}
}

func TestRBAC_ForbiddenRole(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", domain.RoleTechnician)

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if err == nil {
		t.Fatalf("expected error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestRBAC_MissingRole(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without a role, got %v", err)
	}
}
