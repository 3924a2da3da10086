package common

import (
	"context"

	"rentdesk/internal/models"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

// GetUserIDFromContext extracts the authenticated user ID from the
// request context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetRoleFromContext extracts the authenticated user's role from the
// request context.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

// GetPrincipalFromContext assembles the acting principal from the
// request context. Handlers resolve it once and pass it explicitly into
// every gated service call.
func GetPrincipalFromContext(ctx context.Context) (models.Principal, bool) {
	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		return models.Principal{}, false
	}
	role, ok := GetRoleFromContext(ctx)
	if !ok {
		return models.Principal{}, false
	}
	return models.Principal{UserID: userID, Role: role}, true
}
