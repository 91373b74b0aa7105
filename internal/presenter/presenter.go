// Package presenter turns an aggregated backtest into the views rendered by the
// dashboard. Values are rounded to two decimals for display.
package presenter

import (
	"math"
	"sort"

	"strategy-backtest/internal/aggregator"
	"strategy-backtest/internal/dto"
	"strategy-backtest/pkg/utils"

	"github.com/shopspring/decimal"
)

const displayPlaces = 2

func isFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// round leaves ±Inf and NaN untouched; decimal cannot represent them.
func round(value float64) float64 {
	if !isFinite(value) {
		return value
	}
	return decimal.NewFromFloat(value).Round(displayPlaces).InexactFloat64()
}

// monthTotal sums a month exactly in decimal. raw tracks the float sum so an
// overflowing month still reports ±Inf instead of a wrong finite total.
type monthTotal struct {
	sum  decimal.Decimal
	raw  float64
	days int
}

func (m *monthTotal) add(pnl float64) {
	m.raw += pnl
	m.days++
	if isFinite(pnl) {
		m.sum = m.sum.Add(decimal.NewFromFloat(pnl))
	}
}

func (m *monthTotal) value() float64 {
	if !isFinite(m.raw) {
		return m.raw
	}
	return m.sum.Round(displayPlaces).InexactFloat64()
}

// EquityCurve returns one point per traded date with the running cumulative PnL and drawdown.
func EquityCurve(result *dto.AggregatedResult) []dto.EquityPoint {
	if result == nil {
		return []dto.EquityPoint{}
	}

	byDate := make(map[string]float64, len(result.DailyPnl))
	for _, day := range result.DailyPnl {
		byDate[day.Date] = day.Pnl
	}

	points := make([]dto.EquityPoint, 0, len(result.DailyPnl))
	for _, p := range aggregator.DrawdownSeries(result.DailyPnl) {
		points = append(points, dto.EquityPoint{
			Date:          p.Date,
			Pnl:           round(byDate[p.Date]),
			CumulativePnl: round(p.Cumulative),
			Drawdown:      round(p.Drawdown),
		})
	}
	return points
}

type monthKey struct {
	year  int
	month int
}

// BuildHeatmap returns a cell per traded day plus per-month totals, both ascending.
func BuildHeatmap(result *dto.AggregatedResult) *dto.Heatmap {
	heatmap := &dto.Heatmap{
		Cells:  []dto.HeatmapCell{},
		Months: []dto.MonthlyPnl{},
	}
	if result == nil {
		return heatmap
	}

	months := make(map[monthKey]*monthTotal)
	var order []monthKey

	for _, day := range result.DailyPnl {
		date, err := utils.ParseDate(day.Date)
		if err != nil {
			continue
		}
		heatmap.Cells = append(heatmap.Cells, dto.HeatmapCell{
			Date:    day.Date,
			Year:    date.Year(),
			Month:   int(date.Month()),
			Day:     date.Day(),
			Weekday: date.Weekday().String(),
			Pnl:     round(day.Pnl),
		})

		key := monthKey{year: date.Year(), month: int(date.Month())}
		if _, ok := months[key]; !ok {
			order = append(order, key)
			months[key] = &monthTotal{sum: decimal.Zero}
		}
		months[key].add(day.Pnl)
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].year != order[j].year {
			return order[i].year < order[j].year
		}
		return order[i].month < order[j].month
	})
	for _, key := range order {
		heatmap.Months = append(heatmap.Months, dto.MonthlyPnl{
			Year:  key.year,
			Month: key.month,
			Pnl:   months[key].value(),
			Days:  months[key].days,
		})
	}
	return heatmap
}
