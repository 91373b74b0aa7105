package utils

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format of every date key exchanged with the backtest backend.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar-date key. Surrounding whitespace is ignored, anything
// else that does not match DateLayout is rejected.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(value))
}

// FormatDate renders t using DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsValidDateRange reports whether from and to are both valid dates with from <= to.
func IsValidDateRange(from, to string) bool {
	fromDate, err := ParseDate(from)
	if err != nil {
		return false
	}
	toDate, err := ParseDate(to)
	if err != nil {
		return false
	}
	return !fromDate.After(toDate)
}
