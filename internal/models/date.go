package models

import "time"

// DateLayout is ISO 8601 calendar date
const DateLayout = "2006-01-02"

// Day truncates t to its calendar date, expressed as midnight UTC.
// All order dates are compared in this form.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date returns calendar date as midnight UTC
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// DaysIn returns number of days in month
func DaysIn(year int, month time.Month) int {
	return Date(year, month+1, 0).Day()
}
