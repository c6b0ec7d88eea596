// Package fiscal resolves calendar dates to Indian financial-year
// periods. The financial year runs 1 April to 31 March; the assessment
// year is the year following it.
package fiscal

import (
	"fmt"
	"time"
)

// Period describes the financial year containing a date.
type Period struct {
	FYCode  string    `json:"fy_code"`
	AYCode  string    `json:"ay_code"`
	Start   time.Time `json:"start_date"`
	End     time.Time `json:"end_date"`
	Quarter int       `json:"quarter"`
}

// Resolve computes the fiscal period for the supplied date. The caller
// always provides the date; this package never reads the clock.
func Resolve(date time.Time) Period {
	startYear := date.Year()
	if int(date.Month()) < 4 {
		startYear--
	}
	endYear := startYear + 1
	return Period{
		FYCode:  fmt.Sprintf("FY%d-%02d", startYear, endYear%100),
		AYCode:  fmt.Sprintf("AY%d-%02d", endYear, (endYear+1)%100),
		Start:   time.Date(startYear, time.April, 1, 0, 0, 0, 0, time.UTC),
		End:     time.Date(endYear, time.March, 31, 23, 59, 0, 0, time.UTC),
		Quarter: QuarterOf(date),
	}
}

// QuarterOf returns the fiscal quarter (1-4) for a date. Q1 begins at
// the start of the financial year in April.
func QuarterOf(date time.Time) int {
	switch date.Month() {
	case time.April, time.May, time.June:
		return 1
	case time.July, time.August, time.September:
		return 2
	case time.October, time.November, time.December:
		return 3
	default:
		return 4
	}
}

// DaysBetween returns the whole-day difference to - from. Partial days
// truncate, matching due-date arithmetic elsewhere in the engine.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
