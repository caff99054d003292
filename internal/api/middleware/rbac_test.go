package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/czarstudio/studio-api/internal/core/domain"
)

func runRole(t *testing.T, identity *domain.Identity) (int, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		SetIdentity(c, identity)
	}

	called := false
	handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code, called
}

func TestRequireRole_Allows(t *testing.T) {
	code, called := runRole(t, &domain.Identity{UserID: "a1", Role: domain.RoleAdmin})
	if !called || code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestRequireRole_Forbids(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleUser, domain.RoleViewer, "superadmin"} {
		code, called := runRole(t, &domain.Identity{UserID: "u1", Role: role})
		if called || code != http.StatusForbidden {
			t.Fatalf("role %q: expected 403, got %d", role, code)
		}
	}
}

func TestRequireRole_Anonymous(t *testing.T) {
	code, called := runRole(t, nil)
	if called || code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
