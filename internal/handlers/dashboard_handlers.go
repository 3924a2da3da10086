package handlers

import (
	"net/http"

	"rentdesk/internal/common"
	"rentdesk/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandlers serves the role-partitioned dashboards.
type DashboardHandlers struct {
	dashboardService services.DashboardService
}

func NewDashboardHandlers(dashboardService services.DashboardService) *DashboardHandlers {
	return &DashboardHandlers{dashboardService: dashboardService}
}

func (h *DashboardHandlers) AdminDashboard(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	summary, err := h.dashboardService.AdminDashboard(c.Request().Context(), actor)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *DashboardHandlers) TenantDashboard(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	view, err := h.dashboardService.TenantDashboard(c.Request().Context(), actor)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}
