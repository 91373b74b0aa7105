package http

import (
	"context"
	"errors"
	"net/http"

	"strategy-backtest/internal/repository"
	"strategy-backtest/internal/service"
	"strategy-backtest/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
	log       *logger.Logger
}

func NewHttpAPIHandler(ctx context.Context, echo *echo.Echo, validator *goValidator.Validate, service *service.Service, log *logger.Logger) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		validator: validator,
		service:   service,
		log:       log,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.SetupHealth(h.echo)
	base := h.echo.Group("/api")
	h.SetupBacktest(base)
}

// statusFromError maps service and repository errors onto HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidDateRange), errors.Is(err, service.ErrTooManyStrategies):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrEmptyResult):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrUnexpectedStatus):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
