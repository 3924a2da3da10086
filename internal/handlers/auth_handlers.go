package handlers

import (
	"net/http"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/common"
	"rentdesk/internal/models"
	"rentdesk/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles login and self-service registration.
type AuthHandlers struct {
	authService services.AuthService
	userService services.UserService
}

func NewAuthHandlers(authService services.AuthService, userService services.UserService) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		userService: userService,
	}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse bundles the token with the authenticated user and the
// dashboard the caller should land on, mirroring the role-partitioned
// redirect of the login flow.
type LoginResponse struct {
	models.TokenResponse
	User      *models.User `json:"user"`
	Dashboard string       `json:"dashboard"`
}

func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, apperrors.Validation("body", "invalid request format"))
	}

	tokens, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return common.RespondError(c, err)
	}

	dashboard := "/v1/dashboard/tenant"
	if user.Role == models.RoleAdmin {
		dashboard = "/v1/dashboard/admin"
	}

	return c.JSON(http.StatusOK, LoginResponse{
		TokenResponse: *tokens,
		User:          user,
		Dashboard:     dashboard,
	})
}

func (h *AuthHandlers) Register(c echo.Context) error {
	var req services.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, apperrors.Validation("body", "invalid request format"))
	}

	user, err := h.authService.Register(c.Request().Context(), &req)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Me returns the authenticated principal.
func (h *AuthHandlers) Me(c echo.Context) error {
	principal, ok := common.GetPrincipalFromContext(c.Request().Context())
	if !ok {
		return common.RespondError(c, apperrors.Unauthenticated("login required"))
	}
	return c.JSON(http.StatusOK, principal)
}
