package schedule

import (
	"testing"
	"time"
)

func TestWeeklyRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    *WeeklyRule
		wantErr bool
	}{
		{"valid", rule(1, "09:00", "17:00", 30), false},
		{"day too small", rule(-1, "09:00", "17:00", 30), true},
		{"day too large", rule(7, "09:00", "17:00", 30), true},
		{"zero duration", rule(1, "09:00", "17:00", 0), true},
		{"negative duration", rule(1, "09:00", "17:00", -15), true},
		{"start equals end", rule(1, "09:00", "09:00", 30), true},
		{"start after end", rule(1, "17:00", "09:00", 30), true},
		{"unparsable start", rule(1, "morning", "17:00", 30), true},
		{"unparsable end", rule(1, "09:00", "evening", 30), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTimeBlockNormalize(t *testing.T) {
	start := time.Date(2026, 3, 2, 14, 30, 0, 0, time.Local)

	t.Run("all day expands to full calendar day", func(t *testing.T) {
		b := &TimeBlock{StartDateTime: start, IsAllDay: true}
		if err := b.Normalize(); err != nil {
			t.Fatalf("Normalize: %v", err)
		}
		wantStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
		wantEnd := time.Date(2026, 3, 2, 23, 59, 59, 0, time.Local)
		if !b.StartDateTime.Equal(wantStart) || !b.EndDateTime.Equal(wantEnd) {
			t.Errorf("got [%v, %v], want [%v, %v]", b.StartDateTime, b.EndDateTime, wantStart, wantEnd)
		}
	})

	t.Run("timed block keeps bounds", func(t *testing.T) {
		end := start.Add(2 * time.Hour)
		b := &TimeBlock{StartDateTime: start, EndDateTime: end}
		if err := b.Normalize(); err != nil {
			t.Fatalf("Normalize: %v", err)
		}
		if !b.StartDateTime.Equal(start) || !b.EndDateTime.Equal(end) {
			t.Errorf("bounds changed: [%v, %v]", b.StartDateTime, b.EndDateTime)
		}
	})

	t.Run("end before start rejected", func(t *testing.T) {
		b := &TimeBlock{StartDateTime: start, EndDateTime: start.Add(-time.Hour)}
		if err := b.Normalize(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("zero start rejected", func(t *testing.T) {
		b := &TimeBlock{EndDateTime: start}
		if err := b.Normalize(); err == nil {
			t.Fatal("expected error")
		}
	})
}
