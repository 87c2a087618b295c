package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/medagenda/pkg/timeutil"
)

// WeeklyRule is a professional's recurring availability window for one
// day of the week. Slots of SlotDurationMinutes are generated between
// StartTime and EndTime on every matching date.
type WeeklyRule struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	ProfessionalUserID uuid.UUID `gorm:"column:professional_user_id;type:uuid;not null;uniqueIndex:uq_weekly_rules_owner_day_start;index"`

	// DayOfWeek uses 0=Sunday .. 6=Saturday.
	DayOfWeek int `gorm:"column:day_of_week;not null;uniqueIndex:uq_weekly_rules_owner_day_start"`

	// Wall-clock times "HH:MM" in server local time.
	StartTime string `gorm:"column:start_time;type:varchar(8);not null;uniqueIndex:uq_weekly_rules_owner_day_start"`
	EndTime   string `gorm:"column:end_time;type:varchar(8);not null"`

	SlotDurationMinutes int `gorm:"column:slot_duration_minutes;not null"`
}

func (WeeklyRule) TableName() string {
	return "weekly_schedule_rules"
}

// Validate checks the rule's internal invariants: a parsable window,
// start strictly before end, positive duration, day in range.
func (r *WeeklyRule) Validate() error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return ErrInvalidRule
	}
	if r.SlotDurationMinutes <= 0 {
		return ErrInvalidRule
	}
	anchor := time.Now()
	start, err := timeutil.AtClock(anchor, r.StartTime)
	if err != nil {
		return ErrInvalidRule
	}
	end, err := timeutil.AtClock(anchor, r.EndTime)
	if err != nil {
		return ErrInvalidRule
	}
	if !start.Before(end) {
		return ErrInvalidRule
	}
	return nil
}

// TimeBlock is an ad-hoc unavailability interval: vacations, breaks,
// conference days. All-day blocks span 00:00:00 to 23:59:59 of the
// start's calendar date.
type TimeBlock struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	ProfessionalUserID uuid.UUID `gorm:"column:professional_user_id;type:uuid;not null;index"`

	StartDateTime time.Time `gorm:"column:start_date_time;not null;index"`
	EndDateTime   time.Time `gorm:"column:end_date_time;not null"`
	Reason        string    `gorm:"column:reason;type:text"`
	IsAllDay      bool      `gorm:"column:is_all_day;not null;default:false"`
}

func (TimeBlock) TableName() string {
	return "professional_time_blocks"
}

// Normalize expands an all-day block to the full calendar day of its
// start and validates ordering for timed blocks.
func (b *TimeBlock) Normalize() error {
	if b.StartDateTime.IsZero() {
		return ErrInvalidBlock
	}
	if b.IsAllDay {
		b.StartDateTime, b.EndDateTime = timeutil.DayBounds(b.StartDateTime)
		return nil
	}
	if b.EndDateTime.IsZero() || !b.StartDateTime.Before(b.EndDateTime) {
		return ErrInvalidBlock
	}
	return nil
}

// Interval returns the half-open blocked interval.
func (b *TimeBlock) Interval() Interval {
	return Interval{Start: b.StartDateTime, End: b.EndDateTime}
}
