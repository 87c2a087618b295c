package schedule

import "errors"

var (
	ErrRuleNotFound  = errors.New("schedule rule not found")
	ErrRuleExists    = errors.New("a schedule rule for that day and start time already exists")
	ErrInvalidRule   = errors.New("invalid schedule rule: need day 0-6, HH:MM start before end, positive duration")
	ErrBlockNotFound = errors.New("time block not found")
	ErrInvalidBlock  = errors.New("invalid time block: end must be after start")
)
