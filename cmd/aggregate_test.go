package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"strategy-backtest/internal/dto"
	"strategy-backtest/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunAggregate(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{
		"OverallResultSummary": {"TotalProfitLoss": 100, "TotalTrades": 2, "WinTrades": 2, "MaxProfit": 60, "MaxLoss": 0},
		"DictionaryOfDateWisePnl": {"2024-01-01": 40, "2024-01-02": 60}
	}`)
	b := writeFile(t, dir, "b.json", `[
		{"OverallResultSummary": {"TotalProfitLoss": -30, "TotalTrades": 1, "LoseTrades": 1, "MaxLoss": -30},
		 "DictionaryOfDateWisePnl": {"2024-01-02": -30}},
		null
	]`)

	var out bytes.Buffer
	require.NoError(t, runAggregate(&out, logger.NewNop(), []string{a, b}, false))

	var got dto.AggregatedResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 2, got.SourceCount)
	assert.Equal(t, 70.0, got.OverallResultSummary.TotalProfitLoss)
	assert.Equal(t, 3, got.OverallResultSummary.TotalTrades)
	assert.Equal(t, 60.0, got.OverallResultSummary.MaxProfit)
	assert.Equal(t, -30.0, got.OverallResultSummary.MaxLoss)
	assert.Equal(t, []dto.DailyPnl{{Date: "2024-01-01", Pnl: 40}, {Date: "2024-01-02", Pnl: 30}}, got.DailyPnl)
}

func TestRunAggregate_WithViews(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"OverallResultSummary": {"TotalTrades": 1}, "DictionaryOfDateWisePnl": {"2024-02-01": 10}}`)

	var out bytes.Buffer
	require.NoError(t, runAggregate(&out, logger.NewNop(), []string{a}, true))

	var got dto.AggregateBacktestResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.NotNil(t, got.Result)
	assert.Len(t, got.EquityCurve, 1)
	require.NotNil(t, got.Comparison)
	assert.Equal(t, []string{"a.json", dto.CombinedColumn}, got.Comparison.Columns)
}

func TestRunAggregate_OnlyNull(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `null`)

	var out bytes.Buffer
	require.NoError(t, runAggregate(&out, logger.NewNop(), []string{a}, false))
	assert.Equal(t, "null\n", out.String())
}

func TestRunAggregate_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.json", `{"OverallResultSummary":`)

	var out bytes.Buffer
	assert.Error(t, runAggregate(&out, logger.NewNop(), []string{filepath.Join(dir, "missing.json")}, false))
	assert.Error(t, runAggregate(&out, logger.NewNop(), []string{bad}, false))
}

func TestRunAggregate_OverflowingTotalsDoNotPanic(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"DictionaryOfDateWisePnl": {"2024-01-01": 1e308}}`)
	b := writeFile(t, dir, "b.json", `{"DictionaryOfDateWisePnl": {"2024-01-01": 1e308}}`)

	var out bytes.Buffer
	assert.NotPanics(t, func() {
		err := runAggregate(&out, logger.NewNop(), []string{a, b}, true)
		assert.Error(t, err, "an infinite total cannot be encoded as JSON")
	})
}
