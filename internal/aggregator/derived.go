package aggregator

import "strategy-backtest/internal/dto"

// ApplyDerivedMetrics recomputes day counts, percentages and averages from the merged
// daily sequence and the summed trade counts already present on summary. Any value
// coming from an input summary is overwritten.
func ApplyDerivedMetrics(summary *dto.OverallResultSummary, daily []dto.DailyPnl) {
	if summary == nil {
		return
	}

	var (
		winDays, loseDays      int
		totalProfit, totalLoss float64
	)
	for _, day := range daily {
		switch {
		case day.Pnl > 0:
			winDays++
			totalProfit += day.Pnl
		case day.Pnl < 0:
			loseDays++
			totalLoss += day.Pnl
		}
	}

	summary.TotalTradedDays = len(daily)
	summary.WinDays = winDays
	summary.LoseDays = loseDays
	summary.WinDayPer = percentage(winDays, summary.TotalTradedDays)
	summary.LoseDayPer = percentage(loseDays, summary.TotalTradedDays)
	summary.AverageProfitPerDay = average(totalProfit, winDays)
	summary.AverageLossPerDay = average(totalLoss, loseDays)
	summary.WinTradesPer = percentage(summary.WinTrades, summary.TotalTrades)
	summary.LoseTradesPer = percentage(summary.LoseTrades, summary.TotalTrades)
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func average(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
