package aggregator

import "strategy-backtest/internal/dto"

// DrawdownPoint is the running state of the drawdown walk after one date.
type DrawdownPoint struct {
	Date       string
	Cumulative float64
	Peak       float64
	Drawdown   float64
}

// DrawdownSeries walks the ascending daily sequence once. The peak starts at 0, so a
// curve that opens with losses is already in drawdown.
func DrawdownSeries(daily []dto.DailyPnl) []DrawdownPoint {
	points := make([]DrawdownPoint, 0, len(daily))
	var cumulative, peak float64
	for _, day := range daily {
		cumulative += day.Pnl
		if cumulative > peak {
			peak = cumulative
		}
		points = append(points, DrawdownPoint{
			Date:       day.Date,
			Cumulative: cumulative,
			Peak:       peak,
			Drawdown:   cumulative - peak,
		})
	}
	return points
}

// MaxDrawdown returns the most negative peak-to-trough drawdown, or 0.
func MaxDrawdown(daily []dto.DailyPnl) float64 {
	var worst float64
	for _, point := range DrawdownSeries(daily) {
		if point.Drawdown < worst {
			worst = point.Drawdown
		}
	}
	return worst
}
