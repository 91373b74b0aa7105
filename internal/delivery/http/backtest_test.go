package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"strategy-backtest/internal/dto"
	"strategy-backtest/internal/repository"
	"strategy-backtest/internal/service"
	"strategy-backtest/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBacktestService struct {
	aggregateResp *dto.AggregateBacktestResponse
	aggregateErr  error
	strategyResp  *dto.AggregatedResult
	strategyErr   error
	pingErr       error
	merged        []*dto.BacktestResult
	lastAggregate dto.AggregateBacktestRequest
}

func (f *fakeBacktestService) GetStrategyBacktest(ctx context.Context, req dto.StrategyBacktestRequest) (*dto.AggregatedResult, error) {
	return f.strategyResp, f.strategyErr
}

func (f *fakeBacktestService) AggregateBacktests(ctx context.Context, req dto.AggregateBacktestRequest) (*dto.AggregateBacktestResponse, error) {
	f.lastAggregate = req
	return f.aggregateResp, f.aggregateErr
}

func (f *fakeBacktestService) MergeResults(ctx context.Context, results []*dto.BacktestResult) *dto.AggregateBacktestResponse {
	f.merged = results
	return &dto.AggregateBacktestResponse{Result: &dto.AggregatedResult{SourceCount: 1}}
}

func (f *fakeBacktestService) Ping(ctx context.Context) error {
	return f.pingErr
}

func newTestServer(svc service.BacktestService) *echo.Echo {
	e := echo.New()
	h := NewHttpAPIHandler(context.Background(), e, goValidator.New(), &service.Service{BacktestService: svc}, logger.NewNop())
	h.SetupRoutes()
	return e
}

func do(e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, dto.BaseResponse) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp dto.BaseResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

const validAggregateBody = `{"strategyIds":["a","b"],"fromDate":"2024-01-01","toDate":"2024-01-31","userId":"u","apiKey":"k","rangeType":"1M"}`

func TestAggregateBacktestsHandler(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svc      *fakeBacktestService
		wantCode int
	}{
		{
			name:     "success",
			body:     validAggregateBody,
			svc:      &fakeBacktestService{aggregateResp: &dto.AggregateBacktestResponse{Result: &dto.AggregatedResult{SourceCount: 2}}},
			wantCode: http.StatusOK,
		},
		{
			name:     "malformed json",
			body:     `{"strategyIds":`,
			svc:      &fakeBacktestService{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing strategies",
			body:     `{"strategyIds":[],"fromDate":"2024-01-01","toDate":"2024-01-31","userId":"u","apiKey":"k"}`,
			svc:      &fakeBacktestService{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad date format",
			body:     `{"strategyIds":["a"],"fromDate":"01/01/2024","toDate":"2024-01-31","userId":"u","apiKey":"k"}`,
			svc:      &fakeBacktestService{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown range type",
			body:     `{"strategyIds":["a"],"fromDate":"2024-01-01","toDate":"2024-01-31","userId":"u","apiKey":"k","rangeType":"2W"}`,
			svc:      &fakeBacktestService{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "service rejects range",
			body:     validAggregateBody,
			svc:      &fakeBacktestService{aggregateErr: service.ErrInvalidDateRange},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "every strategy failed",
			body: validAggregateBody,
			svc: &fakeBacktestService{aggregateResp: &dto.AggregateBacktestResponse{
				FailedStrategyIDs: []string{"a", "b"},
			}},
			wantCode: http.StatusBadGateway,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer(tt.svc)
			rec, resp := do(e, http.MethodPost, "/api/v1/backtest/aggregate", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestAggregateBacktestsHandler_PassesRequest(t *testing.T) {
	svc := &fakeBacktestService{aggregateResp: &dto.AggregateBacktestResponse{Result: &dto.AggregatedResult{}}}
	e := newTestServer(svc)

	rec, _ := do(e, http.MethodPost, "/api/v1/backtest/aggregate", validAggregateBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"a", "b"}, svc.lastAggregate.StrategyIDs)
	assert.Equal(t, dto.RangeTypeOneMonth, svc.lastAggregate.RangeType)
}

func TestGetStrategyBacktestHandler(t *testing.T) {
	body := `{"strategyId":"a","fromDate":"2024-01-01","toDate":"2024-01-31","userId":"u","apiKey":"k"}`
	tests := []struct {
		name     string
		svc      *fakeBacktestService
		wantCode int
	}{
		{name: "success", svc: &fakeBacktestService{strategyResp: &dto.AggregatedResult{SourceCount: 1}}, wantCode: http.StatusOK},
		{name: "empty result", svc: &fakeBacktestService{strategyErr: repository.ErrEmptyResult}, wantCode: http.StatusNotFound},
		{name: "upstream error", svc: &fakeBacktestService{strategyErr: repository.ErrUnexpectedStatus}, wantCode: http.StatusBadGateway},
		{name: "timeout", svc: &fakeBacktestService{strategyErr: context.DeadlineExceeded}, wantCode: http.StatusGatewayTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer(tt.svc)
			rec, _ := do(e, http.MethodPost, "/api/v1/backtest/strategy", body)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestMergeResultsHandler(t *testing.T) {
	svc := &fakeBacktestService{}
	e := newTestServer(svc)

	rec, resp := do(e, http.MethodPost, "/api/v1/backtest/merge", `[{"DictionaryOfDateWisePnl":{"2024-01-01":5}},null]`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, svc.merged, 2)
	assert.Equal(t, 5.0, svc.merged[0].DictionaryOfDateWisePnl["2024-01-01"])
	assert.Nil(t, svc.merged[1])

	rec, _ = do(e, http.MethodPost, "/api/v1/backtest/merge", `{"not":"an array"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	e := newTestServer(&fakeBacktestService{pingErr: repository.ErrUnexpectedStatus})

	rec, _ := do(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(e, http.MethodGet, "/healthz?deep=true", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
