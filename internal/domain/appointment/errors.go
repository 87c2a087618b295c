package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotTaken           = errors.New("slot is no longer available")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrDateTimeRequired    = errors.New("appointment date/time is required")
)
