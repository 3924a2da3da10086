package common

import (
	"errors"
	"net/http"

	"rentdesk/internal/apperrors"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the standard error envelope returned by all handlers.
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// RespondError maps an application error to its HTTP representation.
// Unrecognized errors become generic 500s so internal details never
// reach the caller.
func RespondError(c echo.Context, err error) error {
	var (
		validationErr *apperrors.ValidationError
		conflictErr   *apperrors.ConflictError
		authnErr      *apperrors.AuthenticationError
		authzErr      *apperrors.AuthorizationError
		notFoundErr   *apperrors.NotFoundError
	)

	switch {
	case errors.As(err, &validationErr):
		details := map[string]string{validationErr.Field: validationErr.Message}
		return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
	case errors.As(err, &conflictErr):
		details := map[string]string{"entity": conflictErr.Entity}
		return c.JSON(http.StatusConflict, CreateErrorResponse("CONFLICT", conflictErr.Message, details))
	case errors.As(err, &authnErr):
		details := map[string]string{"redirect": "/v1/auth/login"}
		return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHENTICATED", authnErr.Message, details))
	case errors.As(err, &authzErr):
		return c.JSON(http.StatusForbidden, CreateErrorResponse("FORBIDDEN", authzErr.Message, nil))
	case errors.As(err, &notFoundErr):
		return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", notFoundErr.Error(), nil))
	default:
		return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", "operation could not be completed", nil))
	}
}
