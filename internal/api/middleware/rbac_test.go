package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/marketplace/commodity-api/internal/core/domain"
)

func TestRBAC_Allows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxRole, "customer")

	called := false
	mw := RBAC(domain.RoleCustomer, domain.RoleBusiness)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	for _, role := range []any{"admin", "", nil} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(CtxRole, role)

		mw := RBAC(domain.RoleCustomer, domain.RoleBusiness)
		handler := mw(func(c echo.Context) error {
			t.Fatalf("should not reach next handler for role %v", role)
			return nil
		})

		err := handler(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusForbidden || he.Message != "forbidden" {
			t.Fatalf("role %v: expected 403 forbidden error, got %v", role, err)
		}
		if rec.Body.Len() != 0 {
			t.Fatalf("role %v: rejection must be rendered by the error handler, got %q", role, rec.Body.String())
		}
	}
}
