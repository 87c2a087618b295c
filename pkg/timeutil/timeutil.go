// Package timeutil centralizes the calendar conventions used by slot
// computation and booking. All dates and times are interpreted in the
// server's local timezone; any code that needs "the day of week for
// 2025-03-14" or "14:30 on that date" must go through this package so
// the whole system derives them the same way.
package timeutil

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDate parses a date-only string ("YYYY-MM-DD") in server local time.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// Noon returns the same calendar date at 12:00 local time. Anchoring
// day-of-week decisions at noon keeps them stable across DST
// transitions, which can shift a midnight instant into the
// neighboring day.
func Noon(d time.Time) time.Time {
	d = d.In(time.Local)
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.Local)
}

// Weekday returns the day of week (0=Sunday .. 6=Saturday) for the
// calendar date of d.
func Weekday(d time.Time) int {
	return int(Noon(d).Weekday())
}

// AtClock combines the calendar date of d with a wall-clock time given
// as "HH:MM" (or "HH:MM:SS", which schedule rows read back from the
// database may carry).
func AtClock(d time.Time, clock string) (time.Time, error) {
	var h, m, s int
	if _, err := fmt.Sscanf(clock, "%d:%d:%d", &h, &m, &s); err != nil {
		s = 0
		if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
			return time.Time{}, fmt.Errorf("invalid clock time %q", clock)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || s < 0 || s > 59 {
		return time.Time{}, fmt.Errorf("invalid clock time %q", clock)
	}
	d = d.In(time.Local)
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, s, 0, time.Local), nil
}

// DayBounds returns the inclusive bounds of the calendar date of d:
// 00:00:00 and 23:59:59 local time. Matches how all-day time blocks
// are stored.
func DayBounds(d time.Time) (time.Time, time.Time) {
	d = d.In(time.Local)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.Local)
	end := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, time.Local)
	return start, end
}

// FormatClock renders t as "HH:MM" in local time, the shape slot lists
// are served in.
func FormatClock(t time.Time) string {
	return t.In(time.Local).Format(ClockLayout)
}

// SameDate reports whether a and b fall on the same local calendar date.
func SameDate(a, b time.Time) bool {
	a, b = a.In(time.Local), b.In(time.Local)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
