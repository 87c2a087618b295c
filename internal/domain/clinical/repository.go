package clinical

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Record) error

	// GetByID scoped to the professional who wrote the record.
	GetByID(ctx context.Context, professionalID, id uuid.UUID) (*Record, error)

	// ListByPatient returns the records a professional has written for
	// one patient, newest first.
	ListByPatient(ctx context.Context, professionalID, patientID uuid.UUID) ([]*Record, error)

	Update(ctx context.Context, professionalID, id uuid.UUID, cmd *UpdateRecordCommand) (*Record, error)

	Delete(ctx context.Context, professionalID, id uuid.UUID) error
}
