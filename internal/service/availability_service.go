package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medagenda/medagenda/internal/domain/appointment"
	"github.com/medagenda/medagenda/internal/domain/schedule"
	"github.com/medagenda/medagenda/pkg/metrics"
	"github.com/medagenda/medagenda/pkg/timeutil"
)

// AppointmentReader is the slice of the appointment repository the
// availability read path needs.
type AppointmentReader interface {
	ListForDay(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]*appointment.Appointment, error)
}

type AvailabilityService struct {
	rules   schedule.RuleRepository
	blocks  schedule.BlockRepository
	appts   AppointmentReader
	metrics *metrics.Collector
	log     *zap.Logger

	// now is swappable in tests; defaults to time.Now.
	now func() time.Time
}

func NewAvailabilityService(
	rules schedule.RuleRepository,
	blocks schedule.BlockRepository,
	appts AppointmentReader,
	m *metrics.Collector,
	log *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		rules:   rules,
		blocks:  blocks,
		appts:   appts,
		metrics: m,
		log:     log,
		now:     time.Now,
	}
}

// GetDayAvailability computes the bookable "HH:MM" slot starts for one
// professional on one date ("YYYY-MM-DD"). A day with no matching
// weekly rules yields an empty list.
func (s *AvailabilityService) GetDayAvailability(ctx context.Context, professionalID uuid.UUID, dateStr string) ([]string, error) {
	date, err := timeutil.ParseDate(dateStr)
	if err != nil {
		return nil, &ValidationError{Fields: []string{"date must be YYYY-MM-DD"}}
	}

	rules, err := s.rules.ListForWeekday(ctx, professionalID, timeutil.Weekday(date))
	if err != nil {
		return nil, fmt.Errorf("loading schedule rules: %w", err)
	}
	if len(rules) == 0 {
		return []string{}, nil
	}

	appts, err := s.appts.ListForDay(ctx, professionalID, date)
	if err != nil {
		return nil, fmt.Errorf("loading appointments: %w", err)
	}
	booked := make([]time.Time, 0, len(appts))
	for _, a := range appts {
		booked = append(booked, a.DateTime)
	}

	dayBlocks, err := s.blocks.ListOverlappingDay(ctx, professionalID, date)
	if err != nil {
		return nil, fmt.Errorf("loading time blocks: %w", err)
	}
	blocked := make([]schedule.Interval, 0, len(dayBlocks))
	for _, b := range dayBlocks {
		blocked = append(blocked, b.Interval())
	}

	slots, err := schedule.ComputeDaySlots(date, s.now(), rules, booked, blocked)
	if err != nil {
		return nil, fmt.Errorf("computing slots: %w", err)
	}
	if slots == nil {
		slots = []string{}
	}

	if s.metrics != nil {
		s.metrics.SlotQueriesTotal.Inc()
		s.metrics.SlotsComputed.Observe(float64(len(slots)))
	}
	s.log.Debug("availability computed",
		zap.String("professional_id", professionalID.String()),
		zap.String("date", dateStr),
		zap.Int("slots", len(slots)),
	)

	return slots, nil
}

// ---- weekly rule management (professional-owned CRUD) ----

type CreateRuleInput struct {
	DayOfWeek           int
	StartTime           string
	EndTime             string
	SlotDurationMinutes int
}

func (s *AvailabilityService) CreateRule(ctx context.Context, professionalID uuid.UUID, in CreateRuleInput) (*schedule.WeeklyRule, error) {
	rule := &schedule.WeeklyRule{
		ProfessionalUserID:  professionalID,
		DayOfWeek:           in.DayOfWeek,
		StartTime:           in.StartTime,
		EndTime:             in.EndTime,
		SlotDurationMinutes: in.SlotDurationMinutes,
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *AvailabilityService) ListRules(ctx context.Context, professionalID uuid.UUID) ([]*schedule.WeeklyRule, error) {
	return s.rules.ListByProfessional(ctx, professionalID)
}

func (s *AvailabilityService) DeleteRule(ctx context.Context, professionalID, ruleID uuid.UUID) error {
	return s.rules.Delete(ctx, professionalID, ruleID)
}

// ---- time block management ----

type CreateBlockInput struct {
	StartDateTime time.Time
	EndDateTime   time.Time
	Reason        string
	IsAllDay      bool
}

func (s *AvailabilityService) CreateBlock(ctx context.Context, professionalID uuid.UUID, in CreateBlockInput) (*schedule.TimeBlock, error) {
	block := &schedule.TimeBlock{
		ProfessionalUserID: professionalID,
		StartDateTime:      in.StartDateTime,
		EndDateTime:        in.EndDateTime,
		Reason:             in.Reason,
		IsAllDay:           in.IsAllDay,
	}
	if err := block.Normalize(); err != nil {
		return nil, err
	}
	if err := s.blocks.Create(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *AvailabilityService) ListBlocks(ctx context.Context, professionalID uuid.UUID) ([]*schedule.TimeBlock, error) {
	return s.blocks.ListByProfessional(ctx, professionalID)
}

func (s *AvailabilityService) DeleteBlock(ctx context.Context, professionalID, blockID uuid.UUID) error {
	return s.blocks.Delete(ctx, professionalID, blockID)
}
