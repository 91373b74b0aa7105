package dto

// EquityPoint is one point of the equity curve.
type EquityPoint struct {
	Date          string  `json:"date"`
	Pnl           float64 `json:"pnl"`
	CumulativePnl float64 `json:"cumulativePnl"`
	Drawdown      float64 `json:"drawdown"`
}

// HeatmapCell is one calendar day of the PnL heatmap.
type HeatmapCell struct {
	Date    string  `json:"date"`
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Day     int     `json:"day"`
	Weekday string  `json:"weekday"`
	Pnl     float64 `json:"pnl"`
}

// MonthlyPnl is the sum of daily PnL for one calendar month.
type MonthlyPnl struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Pnl   float64 `json:"pnl"`
	Days  int     `json:"days"`
}

type Heatmap struct {
	Cells  []HeatmapCell `json:"cells"`
	Months []MonthlyPnl  `json:"months"`
}

// ComparisonRow is one metric across every strategy plus the combined column.
type ComparisonRow struct {
	Metric string             `json:"metric"`
	Values map[string]float64 `json:"values"`
}

// Comparison is the pivot table rendered on the comparison screen.
type Comparison struct {
	Columns []string        `json:"columns"`
	Rows    []ComparisonRow `json:"rows"`
}
