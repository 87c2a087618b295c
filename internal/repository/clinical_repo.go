package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medagenda/medagenda/internal/domain/clinical"
)

type ClinicalRepo struct {
	db *gorm.DB
}

func NewClinicalRepo(db *gorm.DB) *ClinicalRepo {
	return &ClinicalRepo{db: db}
}

func (r *ClinicalRepo) Create(ctx context.Context, rec *clinical.Record) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("creating clinical record: %w", err)
	}
	return nil
}

func (r *ClinicalRepo) GetByID(ctx context.Context, professionalID, id uuid.UUID) (*clinical.Record, error) {
	var rec clinical.Record
	err := r.db.WithContext(ctx).
		Where("id = ? AND professional_user_id = ?", id, professionalID).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, clinical.ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *ClinicalRepo) ListByPatient(ctx context.Context, professionalID, patientID uuid.UUID) ([]*clinical.Record, error) {
	var recs []*clinical.Record
	err := r.db.WithContext(ctx).
		Where("professional_user_id = ? AND patient_id = ?", professionalID, patientID).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *ClinicalRepo) Update(ctx context.Context, professionalID, id uuid.UUID, cmd *clinical.UpdateRecordCommand) (*clinical.Record, error) {
	rec, err := r.GetByID(ctx, professionalID, id)
	if err != nil {
		return nil, err
	}

	if cmd.Pathology != nil {
		rec.Pathology = *cmd.Pathology
	}
	if cmd.Anthropometry != nil {
		rec.Anthropometry = cmd.Anthropometry
	}
	if cmd.Diagnosis != nil {
		rec.Diagnosis = *cmd.Diagnosis
	}
	if cmd.Treatment != nil {
		rec.Treatment = *cmd.Treatment
	}
	if cmd.Notes != nil {
		rec.Notes = *cmd.Notes
	}

	if err := r.db.WithContext(ctx).Save(rec).Error; err != nil {
		return nil, fmt.Errorf("updating clinical record: %w", err)
	}
	return rec, nil
}

func (r *ClinicalRepo) Delete(ctx context.Context, professionalID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND professional_user_id = ?", id, professionalID).
		Delete(&clinical.Record{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return clinical.ErrRecordNotFound
	}
	return nil
}
