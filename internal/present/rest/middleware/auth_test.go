package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/campuschain/ccms/internal/domain"
)

func requesterContext(id string, role domain.Role) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id != "" {
		ctx := context.WithValue(req.Context(), domain.RequesterIdCtxKey, id)
		ctx = context.WithValue(ctx, domain.RequesterRoleCtxKey, role)
		req = req.WithContext(ctx)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestRequireRole(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	tests := []struct {
		name    string
		id      string
		role    domain.Role
		allowed []domain.Role
		want    int
	}{
		{
			name:    "unauthenticated",
			allowed: []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin},
			want:    http.StatusUnauthorized,
		},
		{
			name:    "faculty locked out of admin-only route",
			id:      "user-1",
			role:    domain.RoleFaculty,
			allowed: []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin},
			want:    http.StatusForbidden,
		},
		{
			name:    "admin passes admin-only route",
			id:      "user-2",
			role:    domain.RoleAdmin,
			allowed: []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin},
			want:    http.StatusOK,
		},
		{
			name:    "faculty passes when listed",
			id:      "user-3",
			role:    domain.RoleFaculty,
			allowed: []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleFaculty},
			want:    http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := requesterContext(tt.id, tt.role)
			if err := RequireRole(tt.allowed...)(ok)(c); err != nil {
				t.Fatal(err)
			}
			if got := c.Response().Status; got != tt.want {
				t.Errorf("status %d, want %d", got, tt.want)
			}
		})
	}
}
