package presenter

import (
	"strategy-backtest/internal/aggregator"
	"strategy-backtest/internal/dto"
)

type metric struct {
	name  string
	value func(s dto.OverallResultSummary) float64
}

var comparisonMetrics = []metric{
	{"Total P&L", func(s dto.OverallResultSummary) float64 { return s.TotalProfitLoss }},
	{"Total Trades", func(s dto.OverallResultSummary) float64 { return float64(s.TotalTrades) }},
	{"Win Trades", func(s dto.OverallResultSummary) float64 { return float64(s.WinTrades) }},
	{"Lose Trades", func(s dto.OverallResultSummary) float64 { return float64(s.LoseTrades) }},
	{"Win Trades %", func(s dto.OverallResultSummary) float64 { return s.WinTradesPer }},
	{"Lose Trades %", func(s dto.OverallResultSummary) float64 { return s.LoseTradesPer }},
	{"Traded Days", func(s dto.OverallResultSummary) float64 { return float64(s.TotalTradedDays) }},
	{"Win Days", func(s dto.OverallResultSummary) float64 { return float64(s.WinDays) }},
	{"Lose Days", func(s dto.OverallResultSummary) float64 { return float64(s.LoseDays) }},
	{"Win Days %", func(s dto.OverallResultSummary) float64 { return s.WinDayPer }},
	{"Lose Days %", func(s dto.OverallResultSummary) float64 { return s.LoseDayPer }},
	{"Avg Profit / Day", func(s dto.OverallResultSummary) float64 { return s.AverageProfitPerDay }},
	{"Avg Loss / Day", func(s dto.OverallResultSummary) float64 { return s.AverageLossPerDay }},
	{"Max Profit", func(s dto.OverallResultSummary) float64 { return s.MaxProfit }},
	{"Max Loss", func(s dto.OverallResultSummary) float64 { return s.MaxLoss }},
	{"Win Streak", func(s dto.OverallResultSummary) float64 { return float64(s.WinStreak) }},
	{"Lose Streak", func(s dto.OverallResultSummary) float64 { return float64(s.LoseStreak) }},
	{"Max Drawdown", func(s dto.OverallResultSummary) float64 { return s.CumulativeDrawdown }},
}

// BuildComparison pivots the per-strategy summaries into one row per metric. Each
// strategy column is recomputed through the aggregator so every column is derived
// the same way as the combined one. Failed strategies (nil Result) get no column.
func BuildComparison(results []dto.StrategyResult, combined *dto.AggregatedResult) *dto.Comparison {
	comparison := &dto.Comparison{
		Columns: []string{},
		Rows:    make([]dto.ComparisonRow, 0, len(comparisonMetrics)),
	}

	summaries := make(map[string]dto.OverallResultSummary)
	for _, r := range results {
		single := aggregator.Aggregate([]*dto.BacktestResult{r.Result})
		if single == nil {
			continue
		}
		if _, dup := summaries[r.StrategyID]; dup {
			continue
		}
		comparison.Columns = append(comparison.Columns, r.StrategyID)
		summaries[r.StrategyID] = single.OverallResultSummary
	}
	if combined != nil {
		comparison.Columns = append(comparison.Columns, dto.CombinedColumn)
		summaries[dto.CombinedColumn] = combined.OverallResultSummary
	}

	for _, m := range comparisonMetrics {
		row := dto.ComparisonRow{Metric: m.name, Values: make(map[string]float64, len(summaries))}
		for column, summary := range summaries {
			row.Values[column] = round(m.value(summary))
		}
		comparison.Rows = append(comparison.Rows, row)
	}
	return comparison
}
