package catalog

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	ListSpecialties(ctx context.Context) ([]*Specialty, error)
	CreateSpecialty(ctx context.Context, s *Specialty) error
	UpdateSpecialty(ctx context.Context, id uuid.UUID, name, description string) (*Specialty, error)
	DeleteSpecialty(ctx context.Context, id uuid.UUID) error

	ListPathologies(ctx context.Context) ([]*Pathology, error)
	CreatePathology(ctx context.Context, p *Pathology) error
	UpdatePathology(ctx context.Context, id uuid.UUID, name, description string) (*Pathology, error)
	DeletePathology(ctx context.Context, id uuid.UUID) error
}
