package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"strategy-backtest/pkg/common"
	"strategy-backtest/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(NewRateLimiterMiddleware(RateLimiterConfig{RequestPerSecond: 0.001, Burst: 1, ExpiresIn: time.Minute}))
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	do := func(path string) int {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("/ping"))
	assert.Equal(t, http.StatusTooManyRequests, do("/ping"))
	assert.Equal(t, http.StatusOK, do("/healthz"))
	assert.Equal(t, http.StatusOK, do("/healthz"))
}

func TestRequestIDMiddleware(t *testing.T) {
	base := logger.NewNop()
	e := echo.New()
	e.Use(NewRequestIDMiddleware(base))
	e.GET("/ping", func(c echo.Context) error {
		assert.NotSame(t, base, base.FromContext(c.Request().Context()), "request logger is attached to the context")
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := rec.Header().Get(common.HEADER_REQUEST_ID)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}
