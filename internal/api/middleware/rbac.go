package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC enforces role-based access control. Failing the role gate is 403,
// a distinct outcome from 401: the caller is authenticated but lacks the
// privilege.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient privileges")
			}
			return next(c)
		}
	}
}
