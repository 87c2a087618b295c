package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medagenda/medagenda/internal/domain/catalog"
)

type CatalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) ListSpecialties(ctx context.Context) ([]*catalog.Specialty, error) {
	var out []*catalog.Specialty
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogRepo) CreateSpecialty(ctx context.Context, s *catalog.Specialty) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if isUniqueViolation(err, "") {
			return catalog.ErrEntryExists
		}
		return fmt.Errorf("creating specialty: %w", err)
	}
	return nil
}

func (r *CatalogRepo) UpdateSpecialty(ctx context.Context, id uuid.UUID, name, description string) (*catalog.Specialty, error) {
	var s catalog.Specialty
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrEntryNotFound
		}
		return nil, err
	}
	s.Name = name
	s.Description = description
	if err := r.db.WithContext(ctx).Save(&s).Error; err != nil {
		if isUniqueViolation(err, "") {
			return nil, catalog.ErrEntryExists
		}
		return nil, err
	}
	return &s, nil
}

func (r *CatalogRepo) DeleteSpecialty(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&catalog.Specialty{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return catalog.ErrEntryNotFound
	}
	return nil
}

func (r *CatalogRepo) ListPathologies(ctx context.Context) ([]*catalog.Pathology, error) {
	var out []*catalog.Pathology
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogRepo) CreatePathology(ctx context.Context, p *catalog.Pathology) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err, "") {
			return catalog.ErrEntryExists
		}
		return fmt.Errorf("creating pathology: %w", err)
	}
	return nil
}

func (r *CatalogRepo) UpdatePathology(ctx context.Context, id uuid.UUID, name, description string) (*catalog.Pathology, error) {
	var p catalog.Pathology
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrEntryNotFound
		}
		return nil, err
	}
	p.Name = name
	p.Description = description
	if err := r.db.WithContext(ctx).Save(&p).Error; err != nil {
		if isUniqueViolation(err, "") {
			return nil, catalog.ErrEntryExists
		}
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepo) DeletePathology(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&catalog.Pathology{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return catalog.ErrEntryNotFound
	}
	return nil
}
