package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/baseapi/user-api/internal/core/domain"
	"github.com/baseapi/user-api/internal/core/token"
)

func rbacContext(role string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/audit/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		SetClaims(c, &token.Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
			Role:             role,
		})
	}
	return c
}

func TestRBAC_AllowsMatchingRole(t *testing.T) {
	c := rbacContext(domain.RoleAdmin)

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

func TestRBAC_AllowsAnyListedRole(t *testing.T) {
	c := rbacContext(domain.RoleModerator)

	called := false
	handler := RBAC(domain.RoleAdmin, domain.RoleModerator)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called for second listed role")
	}
}

func TestRBAC_RejectsOtherRole(t *testing.T) {
	c := rbacContext(domain.RoleClient)

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestRBAC_RejectsMissingClaims(t *testing.T) {
	c := rbacContext("")

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError for missing claims, got %v", err)
	}
}
