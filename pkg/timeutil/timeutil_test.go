package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-02")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year() != 2026 || d.Month() != time.March || d.Day() != 2 {
		t.Errorf("got %v", d)
	}
	if d.Location() != time.Local {
		t.Errorf("expected local time, got %v", d.Location())
	}

	for _, bad := range []string{"", "02-03-2026", "2026/03/02", "2026-13-40", "tomorrow"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q): expected error", bad)
		}
	}
}

func TestWeekday(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2026-03-01", 0}, // Sunday
		{"2026-03-02", 1},
		{"2026-03-07", 6}, // Saturday
	}
	for _, tt := range tests {
		d, err := ParseDate(tt.date)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tt.date, err)
		}
		if got := Weekday(d); got != tt.want {
			t.Errorf("Weekday(%s) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

// inLocation runs fn with time.Local pinned to the named zone so the
// package's local-time behavior can be tested deterministically.
func inLocation(t *testing.T, name string, fn func()) {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("timezone database has no %s: %v", name, err)
	}
	orig := time.Local
	time.Local = loc
	defer func() { time.Local = orig }()
	fn()
}

// US DST transitions in 2026: clocks spring forward on Sunday March 8
// and fall back on Sunday November 1. The noon anchor must keep the
// day of week stable on both.
func TestWeekdayAcrossDSTBoundary(t *testing.T) {
	inLocation(t, "America/New_York", func() {
		tests := []struct {
			date string
			want int
		}{
			{"2026-03-07", 6}, // day before spring forward
			{"2026-03-08", 0}, // 02:00-03:00 does not exist
			{"2026-03-09", 1},
			{"2026-10-31", 6},
			{"2026-11-01", 0}, // 01:00-02:00 happens twice
			{"2026-11-02", 1},
		}
		for _, tt := range tests {
			d, err := ParseDate(tt.date)
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", tt.date, err)
			}
			if got := Weekday(d); got != tt.want {
				t.Errorf("Weekday(%s) = %d, want %d", tt.date, got, tt.want)
			}
			if noon := Noon(d); !SameDate(noon, d) || noon.Hour() != 12 {
				t.Errorf("Noon(%s) = %v", tt.date, noon)
			}
		}
	})
}

func TestAtClock(t *testing.T) {
	d, _ := ParseDate("2026-03-02")

	tests := []struct {
		clock   string
		wantH   int
		wantM   int
		wantS   int
		wantErr bool
	}{
		{"09:30", 9, 30, 0, false},
		{"00:00", 0, 0, 0, false},
		{"23:59", 23, 59, 0, false},
		{"14:30:45", 14, 30, 45, false},
		{"24:00", 0, 0, 0, true},
		{"12:60", 0, 0, 0, true},
		{"noonish", 0, 0, 0, true},
		{"", 0, 0, 0, true},
	}

	for _, tt := range tests {
		got, err := AtClock(d, tt.clock)
		if (err != nil) != tt.wantErr {
			t.Errorf("AtClock(%q) error = %v, wantErr %v", tt.clock, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if got.Hour() != tt.wantH || got.Minute() != tt.wantM || got.Second() != tt.wantS {
			t.Errorf("AtClock(%q) = %v", tt.clock, got)
		}
		if !SameDate(got, d) {
			t.Errorf("AtClock(%q) moved to another date: %v", tt.clock, got)
		}
	}
}

func TestDayBounds(t *testing.T) {
	d, _ := ParseDate("2026-03-02")
	in := d.Add(15*time.Hour + 42*time.Minute)

	start, end := DayBounds(in)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Errorf("start = %v", start)
	}
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("end = %v", end)
	}
	if !SameDate(start, in) || !SameDate(end, in) {
		t.Error("bounds left the calendar date")
	}
}

func TestFormatClock(t *testing.T) {
	d, _ := ParseDate("2026-03-02")
	ts, _ := AtClock(d, "09:05")
	if got := FormatClock(ts); got != "09:05" {
		t.Errorf("FormatClock = %q, want %q", got, "09:05")
	}
}

func TestSameDate(t *testing.T) {
	a, _ := ParseDate("2026-03-02")
	if !SameDate(a, a.Add(23*time.Hour)) {
		t.Error("same day should match")
	}
	if SameDate(a, a.AddDate(0, 0, 1)) {
		t.Error("next day should not match")
	}
}
