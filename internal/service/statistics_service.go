package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medagenda/medagenda/pkg/timeutil"
)

// ActivitySummary aggregates one professional's appointment activity
// over a date range.
type ActivitySummary struct {
	From              time.Time        `json:"from"`
	To                time.Time        `json:"to"`
	TotalAppointments int64            `json:"total_appointments"`
	UniquePatients    int64            `json:"unique_patients"`
	ByStatus          map[string]int64 `json:"by_status"`
}

// DailyCount is one row of the per-day appointment report.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// StatsRepository is the aggregation surface over the appointments
// table.
type StatsRepository interface {
	Summarize(ctx context.Context, professionalID uuid.UUID, from, to time.Time) (*ActivitySummary, error)
	CountPerDay(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*DailyCount, error)
}

type StatisticsService struct {
	stats StatsRepository
	log   *zap.Logger
}

func NewStatisticsService(stats StatsRepository, log *zap.Logger) *StatisticsService {
	return &StatisticsService{stats: stats, log: log}
}

// parseRange accepts "YYYY-MM-DD" bounds; an empty from defaults to 30
// days back and an empty to defaults to today. The to bound is
// inclusive of its whole day.
func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error

	if toStr == "" {
		to = time.Now()
	} else if to, err = timeutil.ParseDate(toStr); err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Fields: []string{"to must be YYYY-MM-DD"}}
	}
	_, to = timeutil.DayBounds(to)

	if fromStr == "" {
		from = to.AddDate(0, 0, -30)
	} else if from, err = timeutil.ParseDate(fromStr); err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Fields: []string{"from must be YYYY-MM-DD"}}
	}
	from, _ = timeutil.DayBounds(from)

	if to.Before(from) {
		return time.Time{}, time.Time{}, &ValidationError{Fields: []string{"to must not be before from"}}
	}
	return from, to, nil
}

func (s *StatisticsService) Summary(ctx context.Context, professionalID uuid.UUID, fromStr, toStr string) (*ActivitySummary, error) {
	from, to, err := parseRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	summary, err := s.stats.Summarize(ctx, professionalID, from, to)
	if err != nil {
		return nil, err
	}
	summary.From, summary.To = from, to
	return summary, nil
}

func (s *StatisticsService) DailyReport(ctx context.Context, professionalID uuid.UUID, fromStr, toStr string) ([]*DailyCount, error) {
	from, to, err := parseRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	return s.stats.CountPerDay(ctx, professionalID, from, to)
}
