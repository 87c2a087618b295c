package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medagenda/medagenda/internal/domain/appointment"
	"github.com/medagenda/medagenda/internal/domain/schedule"
	"github.com/medagenda/medagenda/pkg/timeutil"
)

type fakeRuleRepo struct {
	rules   []*schedule.WeeklyRule
	listErr error
	created []*schedule.WeeklyRule
}

func (f *fakeRuleRepo) Create(ctx context.Context, r *schedule.WeeklyRule) error {
	f.created = append(f.created, r)
	return nil
}

func (f *fakeRuleRepo) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*schedule.WeeklyRule, error) {
	return f.rules, f.listErr
}

func (f *fakeRuleRepo) ListForWeekday(ctx context.Context, professionalID uuid.UUID, dayOfWeek int) ([]*schedule.WeeklyRule, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*schedule.WeeklyRule
	for _, r := range f.rules {
		if r.DayOfWeek == dayOfWeek {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRuleRepo) Delete(ctx context.Context, professionalID, ruleID uuid.UUID) error {
	return nil
}

type fakeBlockRepo struct {
	blocks  []*schedule.TimeBlock
	listErr error
}

func (f *fakeBlockRepo) Create(ctx context.Context, b *schedule.TimeBlock) error { return nil }

func (f *fakeBlockRepo) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*schedule.TimeBlock, error) {
	return f.blocks, f.listErr
}

func (f *fakeBlockRepo) ListOverlappingDay(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]*schedule.TimeBlock, error) {
	return f.blocks, f.listErr
}

func (f *fakeBlockRepo) Delete(ctx context.Context, professionalID, blockID uuid.UUID) error {
	return nil
}

type fakeApptReader struct {
	appts   []*appointment.Appointment
	listErr error
}

func (f *fakeApptReader) ListForDay(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]*appointment.Appointment, error) {
	return f.appts, f.listErr
}

func newAvailability(rules *fakeRuleRepo, blocks *fakeBlockRepo, appts *fakeApptReader) *AvailabilityService {
	svc := NewAvailabilityService(rules, blocks, appts, nil, zap.NewNop())
	// pin now to a point before the test dates
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	}
	return svc
}

func mondayRule(start, end string, minutes int) *schedule.WeeklyRule {
	return &schedule.WeeklyRule{
		DayOfWeek:           1,
		StartTime:           start,
		EndTime:             end,
		SlotDurationMinutes: minutes,
	}
}

func TestGetDayAvailability(t *testing.T) {
	professionalID := uuid.New()

	t.Run("happy path", func(t *testing.T) {
		svc := newAvailability(
			&fakeRuleRepo{rules: []*schedule.WeeklyRule{mondayRule("09:00", "10:30", 30)}},
			&fakeBlockRepo{},
			&fakeApptReader{},
		)

		got, err := svc.GetDayAvailability(context.Background(), professionalID, "2026-03-02")
		if err != nil {
			t.Fatalf("GetDayAvailability: %v", err)
		}
		want := []string{"09:00", "09:30", "10:00"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("booked slot disappears", func(t *testing.T) {
		date, _ := timeutil.ParseDate("2026-03-02")
		slot, _ := timeutil.AtClock(date, "09:30")
		svc := newAvailability(
			&fakeRuleRepo{rules: []*schedule.WeeklyRule{mondayRule("09:00", "10:30", 30)}},
			&fakeBlockRepo{},
			&fakeApptReader{appts: []*appointment.Appointment{{DateTime: slot}}},
		)

		got, err := svc.GetDayAvailability(context.Background(), professionalID, "2026-03-02")
		if err != nil {
			t.Fatalf("GetDayAvailability: %v", err)
		}
		want := []string{"09:00", "10:00"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("block removes overlapping slots", func(t *testing.T) {
		svc := newAvailability(
			&fakeRuleRepo{rules: []*schedule.WeeklyRule{mondayRule("09:00", "11:00", 30)}},
			&fakeBlockRepo{blocks: []*schedule.TimeBlock{{
				StartDateTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local),
				EndDateTime:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local),
			}}},
			&fakeApptReader{},
		)

		got, err := svc.GetDayAvailability(context.Background(), professionalID, "2026-03-02")
		if err != nil {
			t.Fatalf("GetDayAvailability: %v", err)
		}
		want := []string{"10:00", "10:30"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("no rules yields empty list", func(t *testing.T) {
		svc := newAvailability(&fakeRuleRepo{}, &fakeBlockRepo{}, &fakeApptReader{})

		got, err := svc.GetDayAvailability(context.Background(), professionalID, "2026-03-02")
		if err != nil {
			t.Fatalf("GetDayAvailability: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", got)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		svc := newAvailability(&fakeRuleRepo{}, &fakeBlockRepo{}, &fakeApptReader{})

		_, err := svc.GetDayAvailability(context.Background(), professionalID, "02/03/2026")
		var validErr *ValidationError
		if !errors.As(err, &validErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("rule store error propagates", func(t *testing.T) {
		storeErr := errors.New("db down")
		svc := newAvailability(&fakeRuleRepo{listErr: storeErr}, &fakeBlockRepo{}, &fakeApptReader{})

		_, err := svc.GetDayAvailability(context.Background(), professionalID, "2026-03-02")
		if !errors.Is(err, storeErr) {
			t.Fatalf("expected wrapped store error, got %v", err)
		}
	})

	t.Run("appointment store error propagates", func(t *testing.T) {
		storeErr := errors.New("db down")
		svc := newAvailability(
			&fakeRuleRepo{rules: []*schedule.WeeklyRule{mondayRule("09:00", "10:00", 30)}},
			&fakeBlockRepo{},
			&fakeApptReader{listErr: storeErr},
		)

		_, err := svc.GetDayAvailability(context.Background(), professionalID, "2026-03-02")
		if !errors.Is(err, storeErr) {
			t.Fatalf("expected wrapped store error, got %v", err)
		}
	})
}

func TestCreateRuleValidation(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := newAvailability(repo, &fakeBlockRepo{}, &fakeApptReader{})
	professionalID := uuid.New()

	_, err := svc.CreateRule(context.Background(), professionalID, CreateRuleInput{
		DayOfWeek:           1,
		StartTime:           "17:00",
		EndTime:             "09:00",
		SlotDurationMinutes: 30,
	})
	if !errors.Is(err, schedule.ErrInvalidRule) {
		t.Fatalf("expected ErrInvalidRule, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("invalid rule must not reach the store")
	}

	rule, err := svc.CreateRule(context.Background(), professionalID, CreateRuleInput{
		DayOfWeek:           1,
		StartTime:           "09:00",
		EndTime:             "17:00",
		SlotDurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("CreateRule: %v", err)
	}
	if rule.ProfessionalUserID != professionalID {
		t.Error("rule not stamped with owner")
	}
	if len(repo.created) != 1 {
		t.Fatal("valid rule should reach the store")
	}
}

func TestCreateBlockNormalizes(t *testing.T) {
	svc := newAvailability(&fakeRuleRepo{}, &fakeBlockRepo{}, &fakeApptReader{})
	professionalID := uuid.New()

	start := time.Date(2026, 3, 2, 15, 0, 0, 0, time.Local)
	block, err := svc.CreateBlock(context.Background(), professionalID, CreateBlockInput{
		StartDateTime: start,
		IsAllDay:      true,
	})
	if err != nil {
		t.Fatalf("CreateBlock: %v", err)
	}
	if block.StartDateTime.Hour() != 0 || block.EndDateTime.Hour() != 23 {
		t.Errorf("all day block not expanded: [%v, %v]", block.StartDateTime, block.EndDateTime)
	}

	_, err = svc.CreateBlock(context.Background(), professionalID, CreateBlockInput{
		StartDateTime: start,
		EndDateTime:   start.Add(-time.Hour),
	})
	if !errors.Is(err, schedule.ErrInvalidBlock) {
		t.Fatalf("expected ErrInvalidBlock, got %v", err)
	}
}
