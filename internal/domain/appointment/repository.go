package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/medagenda/internal/domain/patient"
)

type Repository interface {
	// BookSlot runs the public booking protocol in one transaction:
	// a locking read of any non-canceled appointment at exactly
	// (professionalID, dateTime), then find-or-create of the patient by
	// DNI (refreshing contact fields on reuse), then the insert. A held
	// slot yields ErrSlotTaken; so does the unique-index race backstop.
	BookSlot(ctx context.Context, professionalID uuid.UUID, dateTime time.Time, identity patient.Identity, reason string) (*BookingConfirmation, error)

	// CreateManual inserts an appointment for an existing patient under
	// the same locked conflict check as BookSlot.
	CreateManual(ctx context.Context, cmd *ManualCreateCommand) (*Appointment, error)

	// Reprogram moves the appointment to newDateTime after re-running
	// the conflict check at the new timestamp, excluding the
	// appointment being moved. Scoped to the owning professional;
	// returns ErrAppointmentNotFound for anyone else's appointment.
	Reprogram(ctx context.Context, professionalID, id uuid.UUID, newDateTime time.Time) (*Appointment, error)

	// GetByID scoped to the owning professional.
	GetByID(ctx context.Context, professionalID, id uuid.UUID) (*Appointment, error)

	// UpdateStatus sets the status; ownership scoped like GetByID.
	UpdateStatus(ctx context.Context, professionalID, id uuid.UUID, status Status) (*Appointment, error)

	// UpdateNotes applies partial note updates; ownership scoped.
	UpdateNotes(ctx context.Context, professionalID, id uuid.UUID, cmd *UpdateNotesCommand) (*Appointment, error)

	// Delete removes the appointment outright; ownership scoped.
	Delete(ctx context.Context, professionalID, id uuid.UUID) error

	// List returns appointments for a professional within an optional
	// window, ordered by DateTime ascending.
	List(ctx context.Context, q *ListQuery) ([]*Appointment, error)

	// ListForDay returns the professional's non-canceled appointments
	// whose DateTime falls on the given local calendar date. Read path
	// of the slot generator.
	ListForDay(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]*Appointment, error)
}
