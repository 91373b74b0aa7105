package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"strategy-backtest/internal/aggregator"
	"strategy-backtest/internal/dto"
	"strategy-backtest/internal/presenter"
	"strategy-backtest/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	aggregateWithViews bool
	aggregateVerbose   bool
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate FILE...",
	Short: "Aggregate backtest result JSON files and print the combined report",
	Long: `Each FILE holds either one backtest result object or an array of them.
A null entry counts as a failed strategy and is skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.NewNop()
		if aggregateVerbose {
			var err error
			if log, err = logger.New("debug", "console"); err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
		}
		return runAggregate(cmd.OutOrStdout(), log, args, aggregateWithViews)
	},
}

func init() {
	aggregateCmd.Flags().BoolVar(&aggregateWithViews, "views", false, "include equity curve, heatmap and comparison")
	aggregateCmd.Flags().BoolVarP(&aggregateVerbose, "verbose", "v", false, "log dropped entries to stderr")
}

func runAggregate(out io.Writer, log *logger.Logger, paths []string, withViews bool) error {
	var (
		results         []*dto.BacktestResult
		strategyResults []dto.StrategyResult
	)
	for _, path := range paths {
		loaded, err := readResults(path)
		if err != nil {
			return err
		}
		name := filepath.Base(path)
		for i, result := range loaded {
			id := name
			if len(loaded) > 1 {
				id = fmt.Sprintf("%s#%d", name, i+1)
			}
			results = append(results, result)
			strategyResults = append(strategyResults, dto.StrategyResult{StrategyID: id, Result: result})
		}
	}

	combined, stats := aggregator.AggregateWithStats(results)
	log.Info("Aggregated backtest files",
		logger.IntField("inputs", stats.Inputs),
		logger.IntField("skipped", stats.Skipped),
		logger.IntField("dropped_daily_keys", stats.DroppedDailyKeys),
		logger.IntField("dropped_detail_groups", stats.DroppedDetailGroups))

	var payload interface{} = combined
	if withViews {
		resp := &dto.AggregateBacktestResponse{
			Result:            combined,
			FailedStrategyIDs: []string{},
			EquityCurve:       presenter.EquityCurve(combined),
		}
		if combined != nil {
			resp.Heatmap = presenter.BuildHeatmap(combined)
			resp.Comparison = presenter.BuildComparison(strategyResults, combined)
		}
		payload = resp
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func readResults(path string) ([]*dto.BacktestResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var results []*dto.BacktestResult
		if err := json.Unmarshal(data, &results); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		return results, nil
	}

	var result *dto.BacktestResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return []*dto.BacktestResult{result}, nil
}
