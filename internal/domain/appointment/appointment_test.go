package appointment

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    Status
		wantErr bool
	}{
		{"SCHEDULED", StatusScheduled, false},
		{"confirmed", StatusConfirmed, false},
		{"  no_show  ", StatusNoShow, false},
		{"Canceled_Patient", StatusCanceledPatient, false},
		{"CANCELED", "", true},
		{"", "", true},
		{"DONE", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.raw)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidStatus) {
				t.Errorf("ParseStatus(%q) error = %v, want ErrInvalidStatus", tt.raw, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStatus(%q): %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestStatusIsCanceled(t *testing.T) {
	canceled := []Status{StatusCanceledProfessional, StatusCanceledPatient}
	for _, s := range canceled {
		if !s.IsCanceled() {
			t.Errorf("%q should be canceled", s)
		}
	}
	active := []Status{StatusScheduled, StatusConfirmed, StatusCompleted, StatusNoShow}
	for _, s := range active {
		if s.IsCanceled() {
			t.Errorf("%q should not be canceled", s)
		}
	}
}

func TestOccupiesSlot(t *testing.T) {
	for _, s := range []Status{StatusScheduled, StatusConfirmed, StatusCompleted, StatusNoShow} {
		a := &Appointment{Status: s}
		if !a.OccupiesSlot() {
			t.Errorf("status %q should occupy its slot", s)
		}
	}
	for _, s := range []Status{StatusCanceledProfessional, StatusCanceledPatient} {
		a := &Appointment{Status: s}
		if a.OccupiesSlot() {
			t.Errorf("status %q should free its slot", s)
		}
	}
}
