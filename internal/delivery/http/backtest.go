package http

import (
	"net/http"

	"strategy-backtest/internal/dto"
	"strategy-backtest/pkg/logger"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupBacktest(base *echo.Group) {
	v1 := base.Group("/v1/backtest")
	{
		v1.POST("/aggregate", h.aggregateBacktests)
		v1.POST("/strategy", h.getStrategyBacktest)
		v1.POST("/merge", h.mergeResults)
	}
}

func (h *HttpAPIHandler) aggregateBacktests(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.AggregateBacktestRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	resp, err := h.service.BacktestService.AggregateBacktests(ctx, *req)
	if err != nil {
		code := statusFromError(err)
		return c.JSON(code, dto.NewErrorResponse(code, err.Error()))
	}

	if resp.Result == nil {
		h.log.FromContext(ctx).WarnContext(ctx, "No strategy returned a backtest result",
			logger.StringsField("failed_strategy_ids", resp.FailedStrategyIDs))
		return c.JSON(http.StatusBadGateway, dto.NewBaseResponse(http.StatusBadGateway, "no backtest results available", resp))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", resp))
}

func (h *HttpAPIHandler) getStrategyBacktest(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.StrategyBacktestRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	result, err := h.service.BacktestService.GetStrategyBacktest(ctx, *req)
	if err != nil {
		code := statusFromError(err)
		return c.JSON(code, dto.NewErrorResponse(code, err.Error()))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", result))
}

// mergeResults aggregates results the dashboard already holds. Null entries
// stand for strategies whose fetch failed and are skipped.
func (h *HttpAPIHandler) mergeResults(c echo.Context) error {
	var results []*dto.BacktestResult
	if err := c.Bind(&results); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}

	resp := h.service.BacktestService.MergeResults(c.Request().Context(), results)
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", resp))
}
