package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentdesk/internal/apperrors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, *ErrorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, RespondError(c, err))

	var body ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, &body
}

func TestRespondError_Validation(t *testing.T) {
	rec, body := respond(t, apperrors.Validation("unit_id", "tenant not assigned to this unit"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "tenant not assigned to this unit", body.Error.Details["unit_id"])
}

func TestRespondError_Conflict(t *testing.T) {
	rec, body := respond(t, apperrors.Conflict("unit", "unit already occupied"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", body.Error.Code)
	assert.Equal(t, "unit", body.Error.Details["entity"])
}

func TestRespondError_Unauthenticated_RedirectsToLogin(t *testing.T) {
	rec, body := respond(t, apperrors.Unauthenticated("invalid token"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/v1/auth/login", body.Error.Details["redirect"])
}

func TestRespondError_Forbidden(t *testing.T) {
	rec, body := respond(t, apperrors.Forbidden("admin role required"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
}

func TestRespondError_NotFound(t *testing.T) {
	rec, body := respond(t, apperrors.NotFound("tenant"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestRespondError_WrappedErrorStillMaps(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), apperrors.Conflict("rent_payment", "receipt number already issued for this tenant and month"))
	rec, _ := respond(t, wrapped)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRespondError_UnknownErrorHidesDetail(t *testing.T) {
	rec, body := respond(t, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "SERVER_ERROR", body.Error.Code)
	assert.NotContains(t, body.Error.Message, "connection refused")
}
