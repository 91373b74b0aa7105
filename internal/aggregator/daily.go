package aggregator

import (
	"sort"
	"time"

	"strategy-backtest/internal/dto"
	"strategy-backtest/pkg/utils"
)

// dailyMerger sums PnL per calendar date across inputs. Dates missing from every
// input never appear in the output.
type dailyMerger struct {
	byDate map[time.Time]float64
}

func newDailyMerger() *dailyMerger {
	return &dailyMerger{byDate: make(map[time.Time]float64)}
}

func (m *dailyMerger) add(points []datedPnl) {
	for _, p := range points {
		m.byDate[p.date] += p.pnl
	}
}

// result returns the merged mapping and the same values as an ascending sequence.
func (m *dailyMerger) result() (map[string]float64, []dto.DailyPnl) {
	dates := make([]time.Time, 0, len(m.byDate))
	for date := range m.byDate {
		dates = append(dates, date)
	}
	sort.SliceStable(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	mapping := make(map[string]float64, len(dates))
	sequence := make([]dto.DailyPnl, 0, len(dates))
	for _, date := range dates {
		key := utils.FormatDate(date)
		mapping[key] = m.byDate[date]
		sequence = append(sequence, dto.DailyPnl{Date: key, Pnl: m.byDate[date]})
	}
	return mapping, sequence
}

// MergeDailyPnl merges the per-date PnL mappings of the given results.
// Absent results and malformed date keys are ignored.
func MergeDailyPnl(results []*dto.BacktestResult) (map[string]float64, []dto.DailyPnl) {
	var stats Stats
	merger := newDailyMerger()
	for _, result := range results {
		in, ok := ingest(result, &stats)
		if !ok {
			continue
		}
		merger.add(in.daily)
	}
	return merger.result()
}
