package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medagenda/medagenda/internal/domain/appointment"
	"github.com/medagenda/medagenda/internal/service"
)

type StatsRepo struct {
	db *gorm.DB
}

func NewStatsRepo(db *gorm.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

func (r *StatsRepo) inRange(ctx context.Context, professionalID uuid.UUID, from, to time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("professional_user_id = ? AND date_time BETWEEN ? AND ?", professionalID, from, to)
}

func (r *StatsRepo) Summarize(ctx context.Context, professionalID uuid.UUID, from, to time.Time) (*service.ActivitySummary, error) {
	summary := &service.ActivitySummary{ByStatus: map[string]int64{}}

	if err := r.inRange(ctx, professionalID, from, to).Count(&summary.TotalAppointments).Error; err != nil {
		return nil, fmt.Errorf("counting appointments: %w", err)
	}

	if err := r.inRange(ctx, professionalID, from, to).
		Where("patient_id IS NOT NULL").
		Distinct("patient_id").
		Count(&summary.UniquePatients).Error; err != nil {
		return nil, fmt.Errorf("counting unique patients: %w", err)
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.inRange(ctx, professionalID, from, to).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("grouping by status: %w", err)
	}
	for _, row := range rows {
		summary.ByStatus[row.Status] = row.Count
	}

	return summary, nil
}

func (r *StatsRepo) CountPerDay(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*service.DailyCount, error) {
	var out []*service.DailyCount
	err := r.inRange(ctx, professionalID, from, to).
		Select("to_char(date_time, 'YYYY-MM-DD') AS date, COUNT(*) AS count").
		Group("to_char(date_time, 'YYYY-MM-DD')").
		Order("date ASC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("counting per day: %w", err)
	}
	return out, nil
}
