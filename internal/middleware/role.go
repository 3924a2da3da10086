package middleware

import (
	"rentdesk/internal/apperrors"
	"rentdesk/internal/common"

	"github.com/labstack/echo/v4"
)

// RequireRole gates a route group on the principal's role. Services
// re-check the policy on their own arguments; this keeps obviously
// wrong-role requests from reaching them at all.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := common.GetPrincipalFromContext(c.Request().Context())
			if !ok {
				return common.RespondError(c, apperrors.Unauthenticated("login required"))
			}
			if principal.Role != role {
				return common.RespondError(c, apperrors.Forbidden("insufficient role"))
			}
			return next(c)
		}
	}
}
