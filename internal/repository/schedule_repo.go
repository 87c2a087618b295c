package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medagenda/medagenda/internal/domain/schedule"
	"github.com/medagenda/medagenda/pkg/timeutil"
)

type ScheduleRepo struct {
	db *gorm.DB
}

func NewScheduleRepo(db *gorm.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

func (r *ScheduleRepo) Create(ctx context.Context, rule *schedule.WeeklyRule) error {
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		if isUniqueViolation(err, "") {
			return schedule.ErrRuleExists
		}
		return fmt.Errorf("creating schedule rule: %w", err)
	}
	return nil
}

func (r *ScheduleRepo) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*schedule.WeeklyRule, error) {
	var rules []*schedule.WeeklyRule
	err := r.db.WithContext(ctx).
		Where("professional_user_id = ?", professionalID).
		Order("day_of_week ASC, start_time ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ScheduleRepo) ListForWeekday(ctx context.Context, professionalID uuid.UUID, dayOfWeek int) ([]*schedule.WeeklyRule, error) {
	var rules []*schedule.WeeklyRule
	err := r.db.WithContext(ctx).
		Where("professional_user_id = ? AND day_of_week = ?", professionalID, dayOfWeek).
		Order("start_time ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ScheduleRepo) Delete(ctx context.Context, professionalID, ruleID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND professional_user_id = ?", ruleID, professionalID).
		Delete(&schedule.WeeklyRule{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return schedule.ErrRuleNotFound
	}
	return nil
}

type BlockRepo struct {
	db *gorm.DB
}

func NewBlockRepo(db *gorm.DB) *BlockRepo {
	return &BlockRepo{db: db}
}

func (r *BlockRepo) Create(ctx context.Context, b *schedule.TimeBlock) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("creating time block: %w", err)
	}
	return nil
}

func (r *BlockRepo) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*schedule.TimeBlock, error) {
	var blocks []*schedule.TimeBlock
	err := r.db.WithContext(ctx).
		Where("professional_user_id = ?", professionalID).
		Order("start_date_time ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *BlockRepo) ListOverlappingDay(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]*schedule.TimeBlock, error) {
	dayStart, dayEnd := timeutil.DayBounds(date)

	var blocks []*schedule.TimeBlock
	err := r.db.WithContext(ctx).
		Where("professional_user_id = ? AND start_date_time <= ? AND end_date_time >= ?", professionalID, dayEnd, dayStart).
		Order("start_date_time ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *BlockRepo) Delete(ctx context.Context, professionalID, blockID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND professional_user_id = ?", blockID, professionalID).
		Delete(&schedule.TimeBlock{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return schedule.ErrBlockNotFound
	}
	return nil
}
