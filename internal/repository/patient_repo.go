package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medagenda/medagenda/internal/domain/appointment"
	"github.com/medagenda/medagenda/internal/domain/clinical"
	"github.com/medagenda/medagenda/internal/domain/patient"
)

type PatientRepo struct {
	db *gorm.DB
}

func NewPatientRepo(db *gorm.DB) *PatientRepo {
	return &PatientRepo{db: db}
}

func (r *PatientRepo) Create(ctx context.Context, p *patient.Patient) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err, "") {
			return patient.ErrPatientAlreadyExists
		}
		return fmt.Errorf("creating patient: %w", err)
	}
	return nil
}

func (r *PatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	var p patient.Patient
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, patient.ErrPatientNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepo) GetByDNI(ctx context.Context, dni string) (*patient.Patient, error) {
	var p patient.Patient
	if err := r.db.WithContext(ctx).Where("dni = ?", dni).Take(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, patient.ErrPatientNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepo) Update(ctx context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.DNI != nil {
		p.DNI = *cmd.DNI
	}
	if cmd.FirstName != nil {
		p.FirstName = *cmd.FirstName
	}
	if cmd.LastName != nil {
		p.LastName = *cmd.LastName
	}
	if cmd.Email != nil {
		p.Email = *cmd.Email
	}
	if cmd.Phone != nil {
		p.Phone = *cmd.Phone
	}
	if cmd.BirthDate != nil {
		p.BirthDate = cmd.BirthDate
	}

	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		if isUniqueViolation(err, "") {
			return nil, patient.ErrPatientAlreadyExists
		}
		return nil, fmt.Errorf("updating patient: %w", err)
	}
	return p, nil
}

// ListByProfessional returns the patients that have at least one
// appointment with the professional, ordered by name.
func (r *PatientRepo) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*patient.Patient, error) {
	var patients []*patient.Patient
	err := r.db.WithContext(ctx).
		Where("id IN (SELECT DISTINCT patient_id FROM appointments WHERE professional_user_id = ? AND patient_id IS NOT NULL)", professionalID).
		Order("last_name ASC, first_name ASC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

// Purge hard-deletes the patient together with their appointments and
// clinical records, in one transaction.
func (r *PatientRepo) Purge(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", id).Delete(&clinical.Record{}).Error; err != nil {
			return fmt.Errorf("deleting clinical records: %w", err)
		}
		if err := tx.Where("patient_id = ?", id).Delete(&appointment.Appointment{}).Error; err != nil {
			return fmt.Errorf("deleting appointments: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&patient.Patient{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return patient.ErrPatientNotFound
		}
		return nil
	})
}
