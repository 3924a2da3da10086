package handlers

import (
	"net/http"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/common"
	"rentdesk/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandlers handles admin management of user accounts.
type UserHandlers struct {
	userService services.UserService
}

func NewUserHandlers(userService services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

func (h *UserHandlers) CreateUser(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	var req services.UserWriteRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, apperrors.Validation("body", "invalid request format"))
	}

	user, err := h.userService.Create(c.Request().Context(), actor, &req)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandlers) GetUser(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	user, err := h.userService.GetByID(c.Request().Context(), actor, id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandlers) UpdateUser(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	var req services.UserWriteRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, apperrors.Validation("body", "invalid request format"))
	}

	user, err := h.userService.Update(c.Request().Context(), actor, id, &req)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandlers) DeleteUser(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	if err := h.userService.Delete(c.Request().Context(), actor, id); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandlers) ListUsers(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	limit, offset := pagination(c)

	users, err := h.userService.List(c.Request().Context(), actor, limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"users":  users,
		"limit":  limit,
		"offset": offset,
	})
}
