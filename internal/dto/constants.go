package dto

// RangeType is the preset the dashboard picked for the date range. The backend
// receives it alongside the explicit from/to dates.
type RangeType string

const (
	RangeTypeCustom     RangeType = "CUSTOM"
	RangeTypeOneMonth   RangeType = "1M"
	RangeTypeThreeMonth RangeType = "3M"
	RangeTypeSixMonth   RangeType = "6M"
	RangeTypeOneYear    RangeType = "1Y"
)

// CombinedColumn is the column name used for the aggregated values in comparison views.
const CombinedColumn = "Combined"
