package aggregator

import (
	"time"

	"strategy-backtest/internal/dto"
	"strategy-backtest/pkg/utils"
)

type datedPnl struct {
	date time.Time
	pnl  float64
}

type datedDetail struct {
	date   time.Time
	detail dto.DateWiseDetail
}

// ingested is a validated BacktestResult. Every date has been parsed exactly once and
// nil collections are treated as empty, so the merge steps never need to null-check.
type ingested struct {
	summary dto.OverallResultSummary
	daily   []datedPnl
	details []datedDetail
	scripts []dto.ScriptDetail
}

// ingest validates one result. It returns false for an absent result.
func ingest(result *dto.BacktestResult, stats *Stats) (ingested, bool) {
	if result == nil {
		stats.Skipped++
		return ingested{}, false
	}

	in := ingested{
		summary: result.OverallResultSummary,
		daily:   make([]datedPnl, 0, len(result.DictionaryOfDateWisePnl)),
		details: make([]datedDetail, 0, len(result.DateWiseDetailList)),
		scripts: result.ScriptDetailList,
	}

	for key, pnl := range result.DictionaryOfDateWisePnl {
		date, err := utils.ParseDate(key)
		if err != nil {
			stats.DroppedDailyKeys++
			continue
		}
		in.daily = append(in.daily, datedPnl{date: date, pnl: pnl})
	}

	for _, detail := range result.DateWiseDetailList {
		date, err := utils.ParseDate(detail.Date)
		if err != nil {
			stats.DroppedDetailGroups++
			continue
		}
		in.details = append(in.details, datedDetail{date: date, detail: detail})
	}

	stats.Inputs++
	return in, true
}
