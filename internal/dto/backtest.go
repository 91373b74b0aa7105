package dto

// StrategyBacktestRequest is the payload the backtest backend expects for a single strategy.
type StrategyBacktestRequest struct {
	StrategyID string    `json:"strategyId" validate:"required"`
	FromDate   string    `json:"fromDate" validate:"required,datetime=2006-01-02"`
	ToDate     string    `json:"toDate" validate:"required,datetime=2006-01-02"`
	UserID     string    `json:"userId" validate:"required"`
	APIKey     string    `json:"apiKey" validate:"required"`
	RangeType  RangeType `json:"rangeType" validate:"omitempty,oneof=CUSTOM 1M 3M 6M 1Y"`
}

// AggregateBacktestRequest asks for the combined report of several strategies over one date range.
type AggregateBacktestRequest struct {
	StrategyIDs []string  `json:"strategyIds" validate:"required,min=1,dive,required"`
	FromDate    string    `json:"fromDate" validate:"required,datetime=2006-01-02"`
	ToDate      string    `json:"toDate" validate:"required,datetime=2006-01-02"`
	UserID      string    `json:"userId" validate:"required"`
	APIKey      string    `json:"apiKey" validate:"required"`
	RangeType   RangeType `json:"rangeType" validate:"omitempty,oneof=CUSTOM 1M 3M 6M 1Y"`
}

// ForStrategy builds the per-strategy request sent to the backend.
func (r AggregateBacktestRequest) ForStrategy(strategyID string) StrategyBacktestRequest {
	return StrategyBacktestRequest{
		StrategyID: strategyID,
		FromDate:   r.FromDate,
		ToDate:     r.ToDate,
		UserID:     r.UserID,
		APIKey:     r.APIKey,
		RangeType:  r.RangeType,
	}
}

// Transaction is a single closed trade inside a backtest.
type Transaction struct {
	StrategyID      string  `json:"StrategyId,omitempty"`
	ScriptName      string  `json:"ScriptName"`
	TransactionType string  `json:"TransactionType"`
	Quantity        float64 `json:"Quantity"`
	EntryTime       string  `json:"EntryTime"`
	EntryPrice      float64 `json:"EntryPrice"`
	ExitTime        string  `json:"ExitTime"`
	ExitPrice       float64 `json:"ExitPrice"`
	Pnl             float64 `json:"Pnl"`
}

// DateWiseDetail groups the transactions closed on one calendar date.
type DateWiseDetail struct {
	Date            string        `json:"Date"`
	TransactionList []Transaction `json:"TransactionList"`
	DailyTotalPnl   float64       `json:"DailyTotalPnl"`
}

// ScriptDetail is the per-instrument breakdown of a backtest.
type ScriptDetail struct {
	ScriptName      string        `json:"ScriptName"`
	TotalTrades     int           `json:"TotalTrades"`
	WinTrades       int           `json:"WinTrades"`
	LoseTrades      int           `json:"LoseTrades"`
	Pnl             float64       `json:"Pnl"`
	TransactionList []Transaction `json:"TransactionList"`
}

// OverallResultSummary holds the scalar metrics of a backtest.
type OverallResultSummary struct {
	TotalProfitLoss float64 `json:"TotalProfitLoss"`
	TotalTrades     int     `json:"TotalTrades"`
	WinTrades       int     `json:"WinTrades"`
	LoseTrades      int     `json:"LoseTrades"`
	MaxProfit       float64 `json:"MaxProfit"`
	MaxLoss         float64 `json:"MaxLoss"`
	WinStreak       int     `json:"WinStreak"`
	LoseStreak      int     `json:"LoseStreak"`

	TotalTradedDays     int     `json:"TotalTradedDays"`
	WinDays             int     `json:"WinDays"`
	LoseDays            int     `json:"LoseDays"`
	WinDayPer           float64 `json:"WinDayPer"`
	LoseDayPer          float64 `json:"LoseDayPer"`
	WinTradesPer        float64 `json:"WinTradesPer"`
	LoseTradesPer       float64 `json:"LoseTradesPer"`
	AverageProfitPerDay float64 `json:"AverageProfitPerDay"`
	AverageLossPerDay   float64 `json:"AverageLossPerDay"`
	CumulativeDrawdown  float64 `json:"CumulativeDrawdown"`
}

// BacktestResult is one strategy's raw result for a date range, as returned by the backend.
type BacktestResult struct {
	OverallResultSummary    OverallResultSummary `json:"OverallResultSummary"`
	DictionaryOfDateWisePnl map[string]float64   `json:"DictionaryOfDateWisePnl"`
	DateWiseDetailList      []DateWiseDetail     `json:"DateWiseDetailList"`
	ScriptDetailList        []ScriptDetail       `json:"ScriptDetailList"`
}

// DailyPnl is one point of the ascending date-ordered PnL sequence.
type DailyPnl struct {
	Date string  `json:"Date"`
	Pnl  float64 `json:"Pnl"`
}

// AggregatedResult is the union of one or more BacktestResults.
type AggregatedResult struct {
	OverallResultSummary    OverallResultSummary `json:"OverallResultSummary"`
	DictionaryOfDateWisePnl map[string]float64   `json:"DictionaryOfDateWisePnl"`
	DailyPnl                []DailyPnl           `json:"DailyPnl"`
	DateWiseDetailList      []DateWiseDetail     `json:"DateWiseDetailList"`
	ScriptDetailList        []ScriptDetail       `json:"ScriptDetailList"`
	SourceCount             int                  `json:"SourceCount"`
}

// AsBacktestResult lets an aggregate be fed back into another aggregation.
func (a *AggregatedResult) AsBacktestResult() *BacktestResult {
	if a == nil {
		return nil
	}
	return &BacktestResult{
		OverallResultSummary:    a.OverallResultSummary,
		DictionaryOfDateWisePnl: a.DictionaryOfDateWisePnl,
		DateWiseDetailList:      a.DateWiseDetailList,
		ScriptDetailList:        a.ScriptDetailList,
	}
}

// StrategyResult pairs a fetched result with the strategy it belongs to.
// Result is nil when the fetch failed.
type StrategyResult struct {
	StrategyID string
	Result     *BacktestResult
	Err        error
}

// AggregateBacktestResponse is what the dashboard receives for a multi-strategy request.
type AggregateBacktestResponse struct {
	Result            *AggregatedResult `json:"result"`
	FailedStrategyIDs []string          `json:"failedStrategyIds"`
	EquityCurve       []EquityPoint     `json:"equityCurve"`
	Heatmap           *Heatmap          `json:"heatmap,omitempty"`
	Comparison        *Comparison       `json:"comparison,omitempty"`
}
