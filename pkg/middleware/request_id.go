package middleware

import (
	"strategy-backtest/pkg/common"
	"strategy-backtest/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewRequestIDMiddleware tags every request with a uuid and puts a request-scoped
// logger into the request context, so *Context log calls carry the id.
func NewRequestIDMiddleware(log *logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:    uuid.NewString,
		TargetHeader: common.HEADER_REQUEST_ID,
		RequestIDHandler: func(c echo.Context, requestID string) {
			reqLog := log.With(logger.StringField(common.LOG_KEY_REQUEST_ID, requestID))
			ctx := logger.NewContext(c.Request().Context(), reqLog)
			c.SetRequest(c.Request().WithContext(ctx))
		},
	})
}
