package service

import (
	"context"
	"errors"
	"fmt"

	"strategy-backtest/config"
	"strategy-backtest/internal/aggregator"
	"strategy-backtest/internal/dto"
	"strategy-backtest/internal/presenter"
	"strategy-backtest/internal/repository"
	"strategy-backtest/pkg/common"
	"strategy-backtest/pkg/logger"
	"strategy-backtest/pkg/utils"

	"golang.org/x/sync/errgroup"
)

var (
	ErrTooManyStrategies = errors.New("too many strategies requested")
	ErrInvalidDateRange  = errors.New("fromDate must not be after toDate")
)

// BacktestService fetches per-strategy backtests and combines them into one report.
type BacktestService interface {
	GetStrategyBacktest(ctx context.Context, req dto.StrategyBacktestRequest) (*dto.AggregatedResult, error)
	AggregateBacktests(ctx context.Context, req dto.AggregateBacktestRequest) (*dto.AggregateBacktestResponse, error)
	MergeResults(ctx context.Context, results []*dto.BacktestResult) *dto.AggregateBacktestResponse
	Ping(ctx context.Context) error
}

type backtestService struct {
	cfg          *config.Config
	log          *logger.Logger
	backtestRepo repository.BacktestRepository
}

func NewBacktestService(cfg *config.Config, log *logger.Logger, backtestRepo repository.BacktestRepository) BacktestService {
	return &backtestService{
		cfg:          cfg,
		log:          log,
		backtestRepo: backtestRepo,
	}
}

func (s *backtestService) GetStrategyBacktest(ctx context.Context, req dto.StrategyBacktestRequest) (*dto.AggregatedResult, error) {
	if !utils.IsValidDateRange(req.FromDate, req.ToDate) {
		return nil, ErrInvalidDateRange
	}

	result, err := s.backtestRepo.GetResult(ctx, req)
	if err != nil {
		s.log.FromContext(ctx).ErrorContext(ctx, "Failed to get strategy backtest",
			logger.StringField(common.LOG_KEY_STRATEGY_ID, req.StrategyID),
			logger.ErrorField(err))
		return nil, err
	}

	return s.aggregate(ctx, []*dto.BacktestResult{result}), nil
}

// AggregateBacktests fetches every requested strategy concurrently and aggregates
// whatever came back. Strategies that fail are reported in FailedStrategyIDs; the
// call itself only fails on invalid input.
func (s *backtestService) AggregateBacktests(ctx context.Context, req dto.AggregateBacktestRequest) (*dto.AggregateBacktestResponse, error) {
	if !utils.IsValidDateRange(req.FromDate, req.ToDate) {
		return nil, ErrInvalidDateRange
	}

	strategyIDs := utils.UniqueStrings(req.StrategyIDs)
	if limit := s.cfg.BacktestAPI.MaxStrategiesPerRequest; limit > 0 && len(strategyIDs) > limit {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyStrategies, len(strategyIDs), limit)
	}

	if s.cfg.BacktestAPI.AggregateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.BacktestAPI.AggregateTimeout)
		defer cancel()
	}

	strategyResults := s.fetchAll(ctx, req, strategyIDs)

	results := make([]*dto.BacktestResult, len(strategyResults))
	failed := make([]string, 0)
	for i, sr := range strategyResults {
		results[i] = sr.Result
		if sr.Err != nil {
			failed = append(failed, sr.StrategyID)
		}
	}

	log := s.log.FromContext(ctx)
	if len(failed) > 0 {
		log.WarnContext(ctx, "Some strategies could not be fetched",
			logger.StringsField("failed_strategy_ids", failed),
			logger.IntField("requested", len(strategyIDs)))
	}

	combined := s.aggregate(ctx, results)
	resp := newResponse(combined)
	resp.FailedStrategyIDs = failed
	if combined != nil {
		resp.Comparison = presenter.BuildComparison(strategyResults, combined)
	}
	return resp, nil
}

func (s *backtestService) fetchAll(ctx context.Context, req dto.AggregateBacktestRequest, strategyIDs []string) []dto.StrategyResult {
	results := make([]dto.StrategyResult, len(strategyIDs))

	// plain Group: one failed fetch must not cancel the others
	var g errgroup.Group
	g.SetLimit(s.cfg.BacktestAPI.MaxConcurrency)

	for i, strategyID := range strategyIDs {
		results[i].StrategyID = strategyID
		if !utils.ShouldContinue(ctx, s.log) {
			results[i].Err = ctx.Err()
			continue
		}

		g.Go(func() error {
			result, err := s.backtestRepo.GetResult(ctx, req.ForStrategy(strategyID))
			if err != nil {
				s.log.FromContext(ctx).WarnContext(ctx, "Failed to fetch strategy backtest",
					logger.StringField(common.LOG_KEY_STRATEGY_ID, strategyID),
					logger.ErrorField(err))
				results[i].Err = err
				return nil
			}
			results[i].Result = result
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// MergeResults aggregates results the caller already holds. Nil entries are skipped.
func (s *backtestService) MergeResults(ctx context.Context, results []*dto.BacktestResult) *dto.AggregateBacktestResponse {
	combined := s.aggregate(ctx, results)
	resp := newResponse(combined)
	if combined == nil {
		return resp
	}

	strategyResults := make([]dto.StrategyResult, 0, len(results))
	for i, result := range results {
		if result == nil {
			continue
		}
		strategyResults = append(strategyResults, dto.StrategyResult{
			StrategyID: fmt.Sprintf("#%d", i+1),
			Result:     result,
		})
	}
	resp.Comparison = presenter.BuildComparison(strategyResults, combined)
	return resp
}

func (s *backtestService) Ping(ctx context.Context) error {
	return s.backtestRepo.Ping(ctx)
}

func (s *backtestService) aggregate(ctx context.Context, results []*dto.BacktestResult) *dto.AggregatedResult {
	combined, stats := aggregator.AggregateWithStats(results)

	log := s.log.FromContext(ctx)
	if stats.DroppedDailyKeys > 0 || stats.DroppedDetailGroups > 0 {
		log.WarnContext(ctx, "Dropped entries with malformed dates",
			logger.IntField("dropped_daily_keys", stats.DroppedDailyKeys),
			logger.IntField("dropped_detail_groups", stats.DroppedDetailGroups))
	}
	if combined == nil {
		log.DebugContext(ctx, "No backtest results to aggregate",
			logger.IntField("inputs", stats.Inputs),
			logger.IntField("skipped", stats.Skipped))
		return nil
	}
	log.DebugContext(ctx, "Aggregated backtest results",
		logger.IntField("inputs", stats.Inputs),
		logger.IntField("skipped", stats.Skipped),
		logger.Float64Field("total_pnl", combined.OverallResultSummary.TotalProfitLoss),
		logger.Float64Field("max_drawdown", combined.OverallResultSummary.CumulativeDrawdown))

	return combined
}

func newResponse(combined *dto.AggregatedResult) *dto.AggregateBacktestResponse {
	resp := &dto.AggregateBacktestResponse{
		Result:            combined,
		FailedStrategyIDs: []string{},
		EquityCurve:       []dto.EquityPoint{},
	}
	if combined == nil {
		return resp
	}
	resp.EquityCurve = presenter.EquityCurve(combined)
	resp.Heatmap = presenter.BuildHeatmap(combined)
	return resp
}
