// Package aggregator merges the backtest results of several strategies into one
// combined performance report. Everything here is pure: no I/O, no logging, no
// shared state. Inputs are only read, the output is freshly allocated.
package aggregator

import "strategy-backtest/internal/dto"

// Stats describes what was discarded while aggregating. Callers use it for logging.
type Stats struct {
	Inputs              int
	Skipped             int
	DroppedDailyKeys    int
	DroppedDetailGroups int
}

type accumulator struct {
	daily   *dailyMerger
	details *detailMerger
	summary *summaryAccumulator
	scripts []dto.ScriptDetail
	sources int
}

func newAccumulator() *accumulator {
	return &accumulator{
		daily:   newDailyMerger(),
		details: newDetailMerger(),
		summary: newSummaryAccumulator(),
		scripts: []dto.ScriptDetail{},
	}
}

func (a *accumulator) add(in ingested) {
	a.daily.add(in.daily)
	a.details.add(in.details)
	a.summary.add(in.summary)
	a.scripts = append(a.scripts, in.scripts...)
	a.sources++
}

func (a *accumulator) result() *dto.AggregatedResult {
	summary := a.summary.result()
	if summary == nil {
		return nil
	}

	mapping, sequence := a.daily.result()
	ApplyDerivedMetrics(summary, sequence)
	summary.CumulativeDrawdown = MaxDrawdown(sequence)

	return &dto.AggregatedResult{
		OverallResultSummary:    *summary,
		DictionaryOfDateWisePnl: mapping,
		DailyPnl:                sequence,
		DateWiseDetailList:      a.details.result(),
		ScriptDetailList:        a.scripts,
		SourceCount:             a.sources,
	}
}

// Aggregate combines results into one report. Nil entries (failed fetches) are
// skipped. It returns nil when results is empty or holds only nil entries.
func Aggregate(results []*dto.BacktestResult) *dto.AggregatedResult {
	aggregated, _ := AggregateWithStats(results)
	return aggregated
}

// AggregateWithStats is Aggregate plus a count of what was skipped or dropped.
func AggregateWithStats(results []*dto.BacktestResult) (*dto.AggregatedResult, Stats) {
	var stats Stats
	acc := newAccumulator()
	for _, result := range results {
		in, ok := ingest(result, &stats)
		if !ok {
			continue
		}
		acc.add(in)
	}
	return acc.result(), stats
}
