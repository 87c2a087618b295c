package appointment

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/medagenda/internal/domain/patient"
)

// Status values mirror the appointment lifecycle. Any status may be set
// from any other by explicit professional action; there is no enforced
// ordering, but every change is logged. COMPLETED, the CANCELED variants
// and NO_SHOW are terminal in practice.
type Status string

const (
	StatusScheduled            Status = "SCHEDULED"
	StatusConfirmed            Status = "CONFIRMED"
	StatusCompleted            Status = "COMPLETED"
	StatusCanceledProfessional Status = "CANCELED_PROFESSIONAL"
	StatusCanceledPatient      Status = "CANCELED_PATIENT"
	StatusNoShow               Status = "NO_SHOW"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted,
		StatusCanceledProfessional, StatusCanceledPatient, StatusNoShow:
		return true
	}
	return false
}

// IsCanceled reports whether the status is one of the canceled
// variants. Canceled appointments do not occupy their slot.
func (s Status) IsCanceled() bool {
	return strings.HasPrefix(string(s), "CANCELED")
}

// ParseStatus normalizes and validates a caller-supplied status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	ProfessionalUserID uuid.UUID  `gorm:"column:professional_user_id;type:uuid;not null;index"`
	PatientID          *uuid.UUID `gorm:"column:patient_id;type:uuid;index"`

	// DateTime is the slot start in server local time. For a given
	// professional at most one non-canceled appointment may hold a
	// given DateTime; a partial unique index backs this up.
	DateTime time.Time `gorm:"column:date_time;not null;index"`
	Status   Status    `gorm:"column:status;type:varchar(30);not null;default:'SCHEDULED';index"`

	ReasonForVisit    string `gorm:"column:reason_for_visit;type:text"`
	ProfessionalNotes string `gorm:"column:professional_notes;type:text"`
	PatientNotes      string `gorm:"column:patient_notes;type:text"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// OccupiesSlot reports whether this appointment blocks its timestamp
// from further booking.
func (a *Appointment) OccupiesSlot() bool {
	return !a.Status.IsCanceled()
}

// PublicBookingCommand is a booking submitted through the public flow:
// the patient is identified by DNI and created on first contact.
type PublicBookingCommand struct {
	ProfessionalUserID uuid.UUID
	DateTime           time.Time
	Patient            patient.Identity
	ReasonForVisit     string
}

// ManualCreateCommand is a professional creating an appointment for an
// already-registered patient.
type ManualCreateCommand struct {
	ProfessionalUserID uuid.UUID
	PatientID          uuid.UUID
	DateTime           time.Time
	ReasonForVisit     string
}

type UpdateNotesCommand struct {
	ProfessionalNotes *string
	PatientNotes      *string
}

type ListQuery struct {
	ProfessionalUserID uuid.UUID
	From               *time.Time
	To                 *time.Time
	PatientDNI         string
}

// BookingConfirmation is what both booking paths return to the caller
// for the confirmation display.
type BookingConfirmation struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	DateTime      time.Time `json:"date_time"`
	PatientID     uuid.UUID `json:"patient_id"`
}
