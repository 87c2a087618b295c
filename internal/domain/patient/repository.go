package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new patient. Returns ErrPatientAlreadyExists on a
	// duplicate DNI.
	Create(ctx context.Context, p *Patient) error

	// GetByID returns ErrPatientNotFound when no row exists.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	// GetByDNI retrieves a patient by national identity document.
	GetByDNI(ctx context.Context, dni string) (*Patient, error)

	// Update applies partial updates. DNI changes must remain unique
	// across all other patients.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdatePatientCommand) (*Patient, error)

	// ListByProfessional returns the patients that have at least one
	// appointment with the given professional, ordered by name.
	ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*Patient, error)

	// Purge hard-deletes the patient and cascades to their appointments.
	Purge(ctx context.Context, id uuid.UUID) error
}
