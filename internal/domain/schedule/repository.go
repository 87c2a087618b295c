package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RuleRepository interface {
	// Create persists a rule; duplicate (professional, day, start)
	// yields ErrRuleExists.
	Create(ctx context.Context, r *WeeklyRule) error

	// ListByProfessional returns all rules ordered by day then start.
	ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*WeeklyRule, error)

	// ListForWeekday returns the professional's rules for one day of
	// week (0=Sunday .. 6=Saturday). Read path of the slot generator.
	ListForWeekday(ctx context.Context, professionalID uuid.UUID, dayOfWeek int) ([]*WeeklyRule, error)

	// Delete removes a rule owned by the professional; anyone else's
	// rule yields ErrRuleNotFound.
	Delete(ctx context.Context, professionalID, ruleID uuid.UUID) error
}

type BlockRepository interface {
	Create(ctx context.Context, b *TimeBlock) error

	ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*TimeBlock, error)

	// ListOverlappingDay returns the professional's blocks that overlap
	// any part of the given local calendar date.
	ListOverlappingDay(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]*TimeBlock, error)

	Delete(ctx context.Context, professionalID, blockID uuid.UUID) error
}
