package presenter

import (
	"math"
	"testing"

	"strategy-backtest/internal/aggregator"
	"strategy-backtest/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *dto.AggregatedResult {
	return aggregator.Aggregate([]*dto.BacktestResult{
		{
			OverallResultSummary:    dto.OverallResultSummary{TotalTrades: 3, WinTrades: 2, LoseTrades: 1, MaxProfit: 100, MaxLoss: -50},
			DictionaryOfDateWisePnl: map[string]float64{"2024-01-30": 100.456, "2024-01-31": -50, "2024-02-01": 30},
		},
	})
}

func TestEquityCurve(t *testing.T) {
	got := EquityCurve(sample())
	assert.Equal(t, []dto.EquityPoint{
		{Date: "2024-01-30", Pnl: 100.46, CumulativePnl: 100.46, Drawdown: 0},
		{Date: "2024-01-31", Pnl: -50, CumulativePnl: 50.46, Drawdown: -50},
		{Date: "2024-02-01", Pnl: 30, CumulativePnl: 80.46, Drawdown: -20},
	}, got)
}

func TestEquityCurve_Nil(t *testing.T) {
	assert.Empty(t, EquityCurve(nil))
}

func TestBuildHeatmap(t *testing.T) {
	got := BuildHeatmap(sample())
	require.Len(t, got.Cells, 3)
	assert.Equal(t, dto.HeatmapCell{Date: "2024-01-30", Year: 2024, Month: 1, Day: 30, Weekday: "Tuesday", Pnl: 100.46}, got.Cells[0])
	assert.Equal(t, []dto.MonthlyPnl{
		{Year: 2024, Month: 1, Pnl: 50.46, Days: 2},
		{Year: 2024, Month: 2, Pnl: 30, Days: 1},
	}, got.Months)
}

func TestBuildComparison(t *testing.T) {
	a := &dto.BacktestResult{
		OverallResultSummary:    dto.OverallResultSummary{TotalProfitLoss: 100, TotalTrades: 1, WinTrades: 1, MaxProfit: 100},
		DictionaryOfDateWisePnl: map[string]float64{"2024-03-01": 100},
	}
	b := &dto.BacktestResult{
		OverallResultSummary:    dto.OverallResultSummary{TotalProfitLoss: -30, TotalTrades: 1, LoseTrades: 1, MaxLoss: -30},
		DictionaryOfDateWisePnl: map[string]float64{"2024-03-01": -30},
	}
	results := []dto.StrategyResult{
		{StrategyID: "alpha", Result: a},
		{StrategyID: "beta", Result: b},
		{StrategyID: "gamma"},
	}
	combined := aggregator.Aggregate([]*dto.BacktestResult{a, b})

	got := BuildComparison(results, combined)
	assert.Equal(t, []string{"alpha", "beta", dto.CombinedColumn}, got.Columns)

	rows := make(map[string]map[string]float64)
	for _, row := range got.Rows {
		rows[row.Metric] = row.Values
	}
	assert.Equal(t, map[string]float64{"alpha": 100, "beta": 0, dto.CombinedColumn: 100}, rows["Win Days %"])
	assert.Equal(t, map[string]float64{"alpha": 100, "beta": -30, dto.CombinedColumn: 70}, rows["Total P&L"])
}

func TestViews_OverflowingTotals(t *testing.T) {
	huge := func() *dto.BacktestResult {
		return &dto.BacktestResult{
			OverallResultSummary:    dto.OverallResultSummary{TotalProfitLoss: 1e308, TotalTrades: 1, WinTrades: 1, MaxProfit: 1e308},
			DictionaryOfDateWisePnl: map[string]float64{"2024-01-01": 1e308},
		}
	}
	a, b := huge(), huge()
	combined := aggregator.Aggregate([]*dto.BacktestResult{a, b})
	require.NotNil(t, combined)
	require.True(t, math.IsInf(combined.DailyPnl[0].Pnl, 1))

	var (
		curve      []dto.EquityPoint
		heatmap    *dto.Heatmap
		comparison *dto.Comparison
	)
	require.NotPanics(t, func() {
		curve = EquityCurve(combined)
		heatmap = BuildHeatmap(combined)
		comparison = BuildComparison([]dto.StrategyResult{{StrategyID: "a", Result: a}, {StrategyID: "b", Result: b}}, combined)
	})

	require.Len(t, curve, 1)
	assert.True(t, math.IsInf(curve[0].CumulativePnl, 1))
	require.Len(t, heatmap.Months, 1)
	assert.True(t, math.IsInf(heatmap.Months[0].Pnl, 1))
	assert.True(t, math.IsInf(heatmap.Cells[0].Pnl, 1))

	for _, row := range comparison.Rows {
		if row.Metric == "Total P&L" {
			assert.Equal(t, 1e308, row.Values["a"])
			assert.True(t, math.IsInf(row.Values[dto.CombinedColumn], 1))
		}
	}
}
