package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/staffcore/employee-system/internal/core/domain"
)

func guardContext(t *testing.T, user *domain.User) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(principalKey, user)
	}
	return c
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	c := guardContext(t, &domain.User{ID: 1, IsAdmin: true})

	called := false
	handler := RequireAdmin(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireAdmin_RejectsRegularUser(t *testing.T) {
	c := guardContext(t, &domain.User{ID: 1})

	handler := RequireAdmin(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrInsufficientPrivileges) {
		t.Fatalf("expected ErrInsufficientPrivileges, got %v", err)
	}
}

func TestRequireAdmin_MissingPrincipal(t *testing.T) {
	c := guardContext(t, nil)

	handler := RequireAdmin(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRequireOwner_AdminIsNotEnough(t *testing.T) {
	c := guardContext(t, &domain.User{ID: 1, IsAdmin: true})

	handler := RequireOwner(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrInsufficientPrivileges) {
		t.Fatalf("expected ErrInsufficientPrivileges, got %v", err)
	}
}

func TestRequireOwner_AllowsOwner(t *testing.T) {
	c := guardContext(t, &domain.User{ID: 1, IsAdmin: true, IsOwner: true})

	called := false
	handler := RequireOwner(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}
