package services

import (
	"rentdesk/internal/apperrors"
	"rentdesk/internal/models"

	"github.com/google/uuid"
)

// requireAdmin enforces the access policy for admin-gated operations.
// The acting principal is always an explicit argument so no service
// method depends on ambient session state.
func requireAdmin(actor models.Principal) error {
	if actor.UserID == uuid.Nil {
		return apperrors.Unauthenticated("login required")
	}
	if !actor.IsAdmin() {
		return apperrors.Forbidden("admin role required")
	}
	return nil
}

func requireRole(actor models.Principal, role string) error {
	if actor.UserID == uuid.Nil {
		return apperrors.Unauthenticated("login required")
	}
	if actor.Role != role {
		return apperrors.Forbidden(role + " role required")
	}
	return nil
}
