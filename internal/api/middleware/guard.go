package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffcore/employee-system/internal/core/domain"
)

// RequireAdmin passes the request through only when the authenticated
// principal carries the admin flag. It must run after Auth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return requireFlag(next, func(u *domain.User) bool { return u.IsAdmin })
}

// RequireOwner passes the request through only when the authenticated
// principal carries the owner flag. It must run after Auth.
func RequireOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return requireFlag(next, func(u *domain.User) bool { return u.IsOwner })
}

// requireFlag is a pure predicate gate: it never mutates state, only checks
// the principal and passes the request along.
func requireFlag(next echo.HandlerFunc, allowed func(*domain.User) bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := Principal(c)
		if user == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
		}
		if !allowed(user) {
			return domain.ErrInsufficientPrivileges
		}
		return next(c)
	}
}
