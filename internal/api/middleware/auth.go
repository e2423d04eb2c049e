package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/staffcore/employee-system/internal/api/metrics"
	"github.com/staffcore/employee-system/internal/core/domain"
	"github.com/staffcore/employee-system/internal/core/ports"
)

// principalKey is the context key the resolved user is stored under.
const principalKey = "current_user"

// Auth extracts the bearer token, resolves it to a live user through the
// user service, and injects the principal into the request context. This is
// the single choke point every protected route passes through; terminated
// accounts are rejected here even when their token is still valid.
func Auth(users ports.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := users.CurrentUser(c.Request().Context(), parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verificationResult(err)).Inc()
				return err
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(principalKey, user)
			return next(c)
		}
	}
}

// Principal returns the authenticated user stored by Auth, or nil when the
// middleware did not run.
func Principal(c echo.Context) *domain.User {
	user, _ := c.Get(principalKey).(*domain.User)
	return user
}

func verificationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTerminatedUser):
		return "terminated"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	default:
		return "invalid"
	}
}
