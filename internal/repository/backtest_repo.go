package repository

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"strategy-backtest/config"
	"strategy-backtest/internal/dto"
	"strategy-backtest/pkg/cache"
	"strategy-backtest/pkg/common"
	"strategy-backtest/pkg/httpclient"
	"strategy-backtest/pkg/logger"
	"strategy-backtest/pkg/ratelimit"

	"golang.org/x/time/rate"
)

var (
	ErrUnexpectedStatus = errors.New("backtest api returned unexpected status")
	ErrEmptyResult      = errors.New("backtest api returned an empty result")
)

type BacktestRepository interface {
	GetResult(ctx context.Context, req dto.StrategyBacktestRequest) (*dto.BacktestResult, error)
	Ping(ctx context.Context) error
}

type backtestRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     httpclient.HTTPClient
	inmemoryCache  cache.Cache
	requestLimiter *rate.Limiter
	userLimiters   *ratelimit.LimiterStore
}

func NewBacktestRepository(cfg *config.Config, log *logger.Logger, inmemoryCache cache.Cache) BacktestRepository {
	client := httpclient.New(log, httpclient.Config{
		BaseURL:       cfg.BacktestAPI.BaseURL,
		Timeout:       cfg.BacktestAPI.Timeout,
		RetryCount:    cfg.BacktestAPI.RetryCount,
		RetryWaitTime: cfg.BacktestAPI.RetryWaitTime,
	})
	return newBacktestRepository(cfg, log, inmemoryCache, client)
}

func newBacktestRepository(cfg *config.Config, log *logger.Logger, inmemoryCache cache.Cache, client httpclient.HTTPClient) *backtestRepository {
	return &backtestRepository{
		cfg:            cfg,
		log:            log,
		httpClient:     client,
		inmemoryCache:  inmemoryCache,
		requestLimiter: rate.NewLimiter(ratelimit.PerMinute(cfg.BacktestAPI.MaxRequestPerMin), 1),
		userLimiters:   ratelimit.NewLimiterStore(ratelimit.PerMinute(cfg.BacktestAPI.MaxUserRequestPerMin), 1, cfg.BacktestAPI.UserLimiterIdle),
	}
}

// apiKeyDigest identifies a credential without keeping it in memory in the clear.
func apiKeyDigest(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:])
}

// callerKey is the identity the backend authenticates: the user together with the key it sent.
func callerKey(req dto.StrategyBacktestRequest) string {
	return fmt.Sprintf(common.KEY_BACKTEST_CALLER, req.UserID, apiKeyDigest(req.APIKey))
}

func resultCacheKey(req dto.StrategyBacktestRequest) string {
	return fmt.Sprintf(common.KEY_BACKTEST_RESULT, req.StrategyID, req.FromDate, req.ToDate, req.RangeType, req.UserID, apiKeyDigest(req.APIKey))
}

// GetResult fetches one strategy's backtest for the requested range. Results are
// memoised per user and API key for cfg.Cache.ResultExpiration, so a cache hit is
// only served to a caller presenting the key the backend already accepted.
func (r *backtestRepository) GetResult(ctx context.Context, req dto.StrategyBacktestRequest) (*dto.BacktestResult, error) {
	key := resultCacheKey(req)
	if val, found := cache.GetFromCache[*dto.BacktestResult](r.inmemoryCache, key); found {
		r.log.DebugContext(ctx, "Backtest result served from cache", logger.StringField(common.LOG_KEY_STRATEGY_ID, req.StrategyID))
		return val, nil
	}

	if err := r.userLimiters.Wait(ctx, callerKey(req)); err != nil {
		return nil, err
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	headers := map[string]string{common.HEADER_API_KEY: req.APIKey}
	resp, err := r.httpClient.Post(ctx, r.cfg.BacktestAPI.ResultPath, req, headers, nil)
	r.log.DebugContext(ctx, "Backtest API call finished",
		logger.StringField(common.LOG_KEY_STRATEGY_ID, req.StrategyID),
		logger.DurationField("elapsed", time.Since(start)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch backtest result for strategy %s: %w", req.StrategyID, err)
	}

	if !resp.IsSuccess() {
		r.log.ErrorContext(ctx, "Backtest API returned Non-OK status",
			logger.StringField(common.LOG_KEY_STRATEGY_ID, req.StrategyID),
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, fmt.Errorf("strategy %s: %w", req.StrategyID, ErrEmptyResult)
	}

	var result dto.BacktestResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode backtest result for strategy %s: %w", req.StrategyID, err)
	}
	tagTransactions(&result, req.StrategyID)

	r.inmemoryCache.Set(key, &result, r.cfg.Cache.ResultExpiration)
	return &result, nil
}

// tagTransactions stamps every trade with the strategy it came from so combined
// detail lists stay attributable.
func tagTransactions(result *dto.BacktestResult, strategyID string) {
	for i := range result.DateWiseDetailList {
		txs := result.DateWiseDetailList[i].TransactionList
		for j := range txs {
			txs[j].StrategyID = strategyID
		}
	}
	for i := range result.ScriptDetailList {
		txs := result.ScriptDetailList[i].TransactionList
		for j := range txs {
			txs[j].StrategyID = strategyID
		}
	}
}

func (r *backtestRepository) Ping(ctx context.Context) error {
	resp, err := r.httpClient.Get(ctx, r.cfg.BacktestAPI.HealthPath, nil, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to reach backtest api: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}
