package scraper

import (
	"fmt"
	"time"
)

// Window is a bounded time range (single day or ISO week) scoping one fetch.
type Window struct {
	Start time.Time
	End   time.Time
	Label string
}

// PostedAfter returns the inclusive lower bound in the API's expected format.
func (w Window) PostedAfter() string {
	return w.Start.Format("2006-01-02") + "T00:00:00Z"
}

// PostedBefore returns the inclusive upper bound in the API's expected format.
func (w Window) PostedBefore() string {
	return w.End.Format("2006-01-02") + "T23:59:59Z"
}

// DayWindow scopes a fetch to a single calendar day.
func DayWindow(date time.Time) Window {
	return Window{Start: date, End: date, Label: date.Format("2006-01-02")}
}

// WeekWindow scopes a fetch to the 7 days starting on the Monday of the
// given ISO week. Week numbers outside 1..52 are rejected before any
// network call is made.
func WeekWindow(year, week int) (Window, error) {
	if week < 1 || week > 52 {
		return Window{}, &ValidationError{Reason: fmt.Sprintf("invalid week number %d: week must be between 1 and 52", week)}
	}

	// January 4th is always in ISO week 1; walk back to its Monday.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	monday := jan4.AddDate(0, 0, -(weekday - 1)).AddDate(0, 0, (week-1)*7)

	return Window{
		Start: monday,
		End:   monday.AddDate(0, 0, 6),
		Label: fmt.Sprintf("week %d of %d", week, year),
	}, nil
}

// ParseDate parses a YYYY-MM-DD selector from the CLI.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, &ValidationError{Reason: fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", s)}
	}
	return d, nil
}
