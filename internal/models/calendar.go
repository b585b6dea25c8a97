package models

import "time"

// CalendarDay is a cell of the month grid
type CalendarDay struct {
	Date           time.Time
	IsCurrentMonth bool
	Ordered        bool
	Allowed        bool
}

// Calendar is month grid of weeks starting on Monday
type Calendar struct {
	Year  int
	Month time.Month
	Today time.Time
	Weeks [][]CalendarDay
}

// TodayOrder is state of the caller's order for today
type TodayOrder struct {
	Date     time.Time
	Ordered  bool
	Status   Status
	Editable bool
}
