// Package eligibility decides on which dates a user may still place or withdraw a lunch order.
package eligibility

import (
	"fmt"
	"time"

	"github.com/rookgm/lunchorder/internal/models"
)

const (
	DefaultWindowDays = 6
	DefaultCutoff     = 8*time.Hour + 10*time.Minute
)

// DateSet is set of calendar dates
type DateSet map[time.Time]struct{}

// Contains reports whether the calendar date of d is in the set
func (s DateSet) Contains(d time.Time) bool {
	_, ok := s[models.Day(d)]
	return ok
}

// AllowedDates returns count dates starting at start, skipping Sundays.
func AllowedDates(start time.Time, count int) DateSet {
	allowed := make(DateSet, count)
	d := models.Day(start)
	for len(allowed) < count {
		if d.Weekday() != time.Sunday {
			allowed[d] = struct{}{}
		}
		d = d.AddDate(0, 0, 1)
	}
	return allowed
}

// Policy is editable window and same-day cutoff rule
type Policy struct {
	// WindowDays is number of non-Sunday days open for editing, today included
	WindowDays int
	// Cutoff is time of day after which today's order can not be changed
	Cutoff time.Duration
	// Location is time zone of "today" and the cutoff
	Location *time.Location
}

// NewPolicy creates new Policy instance
func NewPolicy(windowDays int, cutoff time.Duration, loc *time.Location) (Policy, error) {
	if windowDays <= 0 {
		return Policy{}, fmt.Errorf("window days must be positive, got %d", windowDays)
	}
	if cutoff < 0 || cutoff >= 24*time.Hour {
		return Policy{}, fmt.Errorf("cutoff must be within a day, got %s", cutoff)
	}
	if loc == nil {
		loc = time.Local
	}
	return Policy{
		WindowDays: windowDays,
		Cutoff:     cutoff,
		Location:   loc,
	}, nil
}

// Today returns calendar date of now in policy location
func (p Policy) Today(now time.Time) time.Time {
	return models.Day(now.In(p.location()))
}

// Allowed returns editable dates relative to now
func (p Policy) Allowed(now time.Time) DateSet {
	return AllowedDates(p.Today(now), p.WindowDays)
}

// Check returns nil if day is editable at now.
// Window is checked before the cutoff, so ErrWindowClosed wins over ErrCutoffPassed.
func (p Policy) Check(day, now time.Time) error {
	today := p.Today(now)
	if !AllowedDates(today, p.WindowDays).Contains(day) {
		return models.ErrWindowClosed
	}
	if models.Day(day).Equal(today) && p.sinceMidnight(now) >= p.Cutoff {
		return fmt.Errorf("%w: orders close at %s", models.ErrCutoffPassed, p.CutoffString())
	}
	return nil
}

// Editable reports whether day is editable at now
func (p Policy) Editable(day, now time.Time) bool {
	return p.Check(day, now) == nil
}

// CutoffString formats cutoff as HH:MM
func (p Policy) CutoffString() string {
	return FormatCutoff(p.Cutoff)
}

func (p Policy) sinceMidnight(now time.Time) time.Duration {
	local := now.In(p.location())
	h, m, s := local.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second +
		time.Duration(local.Nanosecond())
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

// ParseCutoff parses HH:MM time of day
func ParseCutoff(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid cutoff %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// FormatCutoff formats time of day as HH:MM
func FormatCutoff(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}
