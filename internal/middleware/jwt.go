package middleware

import (
	"context"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/common"
	"rentdesk/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWTConfig builds the echo-jwt configuration for the protected route
// group. On success the principal's user ID and role are copied into
// the request context so handlers can pass them explicitly into
// services.
func JWTConfig(secret string) echojwt.Config {
	return echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(services.AuthClaims)
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(*services.AuthClaims)
			if !ok {
				return
			}
			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return
			}
			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			ctx = context.WithValue(ctx, common.RoleKey, claims.Role)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return common.RespondError(c, apperrors.Unauthenticated("missing or invalid token"))
		},
	}
}
