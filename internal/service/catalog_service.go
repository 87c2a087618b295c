package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medagenda/medagenda/internal/domain/catalog"
)

type CatalogService struct {
	repo catalog.Repository
	log  *zap.Logger
}

func NewCatalogService(repo catalog.Repository, log *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

func (s *CatalogService) ListSpecialties(ctx context.Context) ([]*catalog.Specialty, error) {
	return s.repo.ListSpecialties(ctx)
}

func (s *CatalogService) CreateSpecialty(ctx context.Context, name, description string) (*catalog.Specialty, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, catalog.ErrNameRequired
	}
	entry := &catalog.Specialty{Name: name, Description: description}
	if err := s.repo.CreateSpecialty(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *CatalogService) UpdateSpecialty(ctx context.Context, id uuid.UUID, name, description string) (*catalog.Specialty, error) {
	if strings.TrimSpace(name) == "" {
		return nil, catalog.ErrNameRequired
	}
	return s.repo.UpdateSpecialty(ctx, id, strings.TrimSpace(name), description)
}

func (s *CatalogService) DeleteSpecialty(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSpecialty(ctx, id)
}

func (s *CatalogService) ListPathologies(ctx context.Context) ([]*catalog.Pathology, error) {
	return s.repo.ListPathologies(ctx)
}

func (s *CatalogService) CreatePathology(ctx context.Context, name, description string) (*catalog.Pathology, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, catalog.ErrNameRequired
	}
	entry := &catalog.Pathology{Name: name, Description: description}
	if err := s.repo.CreatePathology(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *CatalogService) UpdatePathology(ctx context.Context, id uuid.UUID, name, description string) (*catalog.Pathology, error) {
	if strings.TrimSpace(name) == "" {
		return nil, catalog.ErrNameRequired
	}
	return s.repo.UpdatePathology(ctx, id, strings.TrimSpace(name), description)
}

func (s *CatalogService) DeletePathology(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePathology(ctx, id)
}
