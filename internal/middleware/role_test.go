package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentdesk/internal/common"
	"rentdesk/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func invokeWithRole(t *testing.T, role string, required string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if role != "" {
		ctx := context.WithValue(req.Context(), common.UserIDKey, uuid.New())
		ctx = context.WithValue(ctx, common.RoleKey, role)
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireRole(required)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, handler(c))
	return rec
}

func TestRequireRole_Allows(t *testing.T) {
	rec := invokeWithRole(t, models.RoleAdmin, models.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	rec := invokeWithRole(t, models.RoleTenant, models.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_NoPrincipal(t *testing.T) {
	rec := invokeWithRole(t, "", models.RoleAdmin)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
