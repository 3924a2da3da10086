package handlers

import (
	"net/http"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/common"
	"rentdesk/internal/services"

	"github.com/labstack/echo/v4"
)

// UnitHandlers handles unit-related HTTP requests. Unit status never
// appears in the request payloads: it is derived state.
type UnitHandlers struct {
	unitService services.UnitService
}

func NewUnitHandlers(unitService services.UnitService) *UnitHandlers {
	return &UnitHandlers{unitService: unitService}
}

func (h *UnitHandlers) CreateUnit(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	var req services.UnitWriteRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, apperrors.Validation("body", "invalid request format"))
	}

	unit, err := h.unitService.Create(c.Request().Context(), actor, &req)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, unit)
}

func (h *UnitHandlers) GetUnit(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	unit, err := h.unitService.GetByID(c.Request().Context(), actor, id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, unit)
}

func (h *UnitHandlers) UpdateUnit(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	var req services.UnitWriteRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, apperrors.Validation("body", "invalid request format"))
	}

	unit, err := h.unitService.Update(c.Request().Context(), actor, id, &req)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, unit)
}

func (h *UnitHandlers) DeleteUnit(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	if err := h.unitService.Delete(c.Request().Context(), actor, id); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UnitHandlers) ListUnits(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	limit, offset := pagination(c)

	ctx := c.Request().Context()
	if buildingIDStr := c.QueryParam("building_id"); buildingIDStr != "" {
		buildingID, err := common.ValidateUUID(buildingIDStr, "building_id")
		if err != nil {
			return common.RespondError(c, apperrors.Validation("building_id", err.Error()))
		}
		units, err := h.unitService.ListByBuilding(ctx, actor, buildingID, limit, offset)
		if err != nil {
			return common.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"units":  units,
			"limit":  limit,
			"offset": offset,
		})
	}

	units, err := h.unitService.List(ctx, actor, limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"units":  units,
		"limit":  limit,
		"offset": offset,
	})
}
