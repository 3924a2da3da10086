package handlers

import (
	"net/http"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/common"
	"rentdesk/internal/models"
	"rentdesk/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BuildingHandlers handles building-related HTTP requests
type BuildingHandlers struct {
	buildingService services.BuildingService
}

func NewBuildingHandlers(buildingService services.BuildingService) *BuildingHandlers {
	return &BuildingHandlers{buildingService: buildingService}
}

func principal(c echo.Context) (models.Principal, error) {
	p, ok := common.GetPrincipalFromContext(c.Request().Context())
	if !ok {
		return models.Principal{}, apperrors.Unauthenticated("login required")
	}
	return p, nil
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return uuid.Nil, apperrors.Validation("id", err.Error())
	}
	return id, nil
}

// ListRequest represents shared pagination query parameters.
type ListRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func pagination(c echo.Context) (int, int) {
	var req ListRequest
	_ = c.Bind(&req)
	return common.ValidatePaginationParams(req.Limit, req.Offset)
}

func (h *BuildingHandlers) CreateBuilding(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	var req services.BuildingWriteRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, apperrors.Validation("body", "invalid request format"))
	}

	building, err := h.buildingService.Create(c.Request().Context(), actor, &req)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, building)
}

func (h *BuildingHandlers) GetBuilding(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	building, err := h.buildingService.GetByID(c.Request().Context(), actor, id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, building)
}

func (h *BuildingHandlers) UpdateBuilding(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	var req services.BuildingWriteRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, apperrors.Validation("body", "invalid request format"))
	}

	building, err := h.buildingService.Update(c.Request().Context(), actor, id, &req)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, building)
}

func (h *BuildingHandlers) DeleteBuilding(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	if err := h.buildingService.Delete(c.Request().Context(), actor, id); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BuildingHandlers) ListBuildings(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	limit, offset := pagination(c)

	buildings, err := h.buildingService.List(c.Request().Context(), actor, limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"buildings": buildings,
		"limit":     limit,
		"offset":    offset,
	})
}
