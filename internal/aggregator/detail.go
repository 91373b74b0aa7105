package aggregator

import (
	"sort"
	"time"

	"strategy-backtest/internal/dto"
	"strategy-backtest/pkg/utils"
)

// detailMerger groups transaction details by date. Transactions are concatenated
// in input order and never de-duplicated: two strategies can legitimately report
// the same trade.
type detailMerger struct {
	byDate map[time.Time]*dto.DateWiseDetail
	order  []time.Time
}

func newDetailMerger() *detailMerger {
	return &detailMerger{byDate: make(map[time.Time]*dto.DateWiseDetail)}
}

func (m *detailMerger) add(details []datedDetail) {
	for _, d := range details {
		merged, ok := m.byDate[d.date]
		if !ok {
			merged = &dto.DateWiseDetail{
				Date:            utils.FormatDate(d.date),
				TransactionList: []dto.Transaction{},
			}
			m.byDate[d.date] = merged
			m.order = append(m.order, d.date)
		}
		merged.TransactionList = append(merged.TransactionList, d.detail.TransactionList...)
		merged.DailyTotalPnl += d.detail.DailyTotalPnl
	}
}

func (m *detailMerger) result() []dto.DateWiseDetail {
	dates := make([]time.Time, len(m.order))
	copy(dates, m.order)
	sort.SliceStable(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	out := make([]dto.DateWiseDetail, 0, len(dates))
	for _, date := range dates {
		out = append(out, *m.byDate[date])
	}
	return out
}

// MergeDateWiseDetails merges the per-date transaction groups of the given results.
func MergeDateWiseDetails(results []*dto.BacktestResult) []dto.DateWiseDetail {
	var stats Stats
	merger := newDetailMerger()
	for _, result := range results {
		in, ok := ingest(result, &stats)
		if !ok {
			continue
		}
		merger.add(in.details)
	}
	return merger.result()
}
