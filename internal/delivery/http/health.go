package http

import (
	"net/http"

	"strategy-backtest/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupHealth(e *echo.Echo) {
	e.GET("/healthz", h.health)
}

// health reports liveness of this service and, with ?deep=true, reachability of the backtest API.
func (h *HttpAPIHandler) health(c echo.Context) error {
	if c.QueryParam("deep") != "true" {
		return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", nil))
	}

	if err := h.service.BacktestService.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(http.StatusServiceUnavailable, err.Error()))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", nil))
}
