package handler

import (
	"net/http"
	"storefront-demo/internal/dto"
	"storefront-demo/internal/service"

	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) GetStats(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.dashboardService.GetStats(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewDashboardResponse(stats))
}

func (h *DashboardHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.dashboardService.ListOrders(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewOrders(orders))
}
