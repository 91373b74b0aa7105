package aggregator

import (
	"math"

	"strategy-backtest/internal/dto"
)

// Combine is how a rule folds one input summary into the accumulator.
type Combine string

const (
	CombineSum Combine = "sum"
	CombineMax Combine = "max"
	CombineMin Combine = "min"
)

// SummaryRule binds one OverallResultSummary field to its combination rule.
type SummaryRule struct {
	Field   string
	Combine Combine
	seed    func(acc *dto.OverallResultSummary)
	apply   func(acc *dto.OverallResultSummary, in dto.OverallResultSummary)
}

// SummaryRules lists every field taken from the inputs. Fields not listed here
// (day counts, percentages, averages, drawdown) are recomputed from merged daily data.
var SummaryRules = []SummaryRule{
	{
		Field:   "TotalProfitLoss",
		Combine: CombineSum,
		apply: func(acc *dto.OverallResultSummary, in dto.OverallResultSummary) {
			acc.TotalProfitLoss += in.TotalProfitLoss
		},
	},
	{
		Field:   "TotalTrades",
		Combine: CombineSum,
		apply: func(acc *dto.OverallResultSummary, in dto.OverallResultSummary) {
			acc.TotalTrades += in.TotalTrades
		},
	},
	{
		Field:   "WinTrades",
		Combine: CombineSum,
		apply: func(acc *dto.OverallResultSummary, in dto.OverallResultSummary) {
			acc.WinTrades += in.WinTrades
		},
	},
	{
		Field:   "LoseTrades",
		Combine: CombineSum,
		apply: func(acc *dto.OverallResultSummary, in dto.OverallResultSummary) {
			acc.LoseTrades += in.LoseTrades
		},
	},
	{
		Field:   "MaxProfit",
		Combine: CombineMax,
		seed: func(acc *dto.OverallResultSummary) {
			acc.MaxProfit = math.Inf(-1)
		},
		apply: func(acc *dto.OverallResultSummary, in dto.OverallResultSummary) {
			acc.MaxProfit = math.Max(acc.MaxProfit, in.MaxProfit)
		},
	},
	{
		Field:   "MaxLoss",
		Combine: CombineMin,
		seed: func(acc *dto.OverallResultSummary) {
			acc.MaxLoss = math.Inf(1)
		},
		apply: func(acc *dto.OverallResultSummary, in dto.OverallResultSummary) {
			acc.MaxLoss = math.Min(acc.MaxLoss, in.MaxLoss)
		},
	},
	{
		Field:   "WinStreak",
		Combine: CombineMax,
		apply: func(acc *dto.OverallResultSummary, in dto.OverallResultSummary) {
			acc.WinStreak = max(acc.WinStreak, in.WinStreak)
		},
	},
	{
		Field:   "LoseStreak",
		Combine: CombineMax,
		apply: func(acc *dto.OverallResultSummary, in dto.OverallResultSummary) {
			acc.LoseStreak = max(acc.LoseStreak, in.LoseStreak)
		},
	},
}

type summaryAccumulator struct {
	acc   dto.OverallResultSummary
	count int
}

func newSummaryAccumulator() *summaryAccumulator {
	s := &summaryAccumulator{}
	for _, rule := range SummaryRules {
		if rule.seed != nil {
			rule.seed(&s.acc)
		}
	}
	return s
}

func (s *summaryAccumulator) add(in dto.OverallResultSummary) {
	for _, rule := range SummaryRules {
		rule.apply(&s.acc, in)
	}
	s.count++
}

// result returns nil when nothing was added, so "no data" never looks like a
// zero-PnL summary.
func (s *summaryAccumulator) result() *dto.OverallResultSummary {
	if s.count == 0 {
		return nil
	}
	out := s.acc
	return &out
}

// AggregateSummaries combines the scalar blocks of several results with SummaryRules.
// Derived fields are left zero; see ApplyDerivedMetrics.
func AggregateSummaries(summaries []dto.OverallResultSummary) *dto.OverallResultSummary {
	acc := newSummaryAccumulator()
	for _, summary := range summaries {
		acc.add(summary)
	}
	return acc.result()
}
