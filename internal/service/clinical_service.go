package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medagenda/medagenda/internal/domain/clinical"
	"github.com/medagenda/medagenda/internal/domain/patient"
)

type ClinicalService struct {
	records  clinical.Repository
	patients patient.Repository
	log      *zap.Logger
}

func NewClinicalService(records clinical.Repository, patients patient.Repository, log *zap.Logger) *ClinicalService {
	return &ClinicalService{records: records, patients: patients, log: log}
}

// CreateRecord attaches a clinical note to a patient. The patient must
// exist; records are owned by the authoring professional.
func (s *ClinicalService) CreateRecord(ctx context.Context, cmd *clinical.CreateRecordCommand) (*clinical.Record, error) {
	if cmd.PatientID == uuid.Nil {
		return nil, &ValidationError{Fields: []string{"patient_id is required"}}
	}
	if _, err := s.patients.GetByID(ctx, cmd.PatientID); err != nil {
		return nil, err
	}

	rec := &clinical.Record{
		PatientID:          cmd.PatientID,
		ProfessionalUserID: cmd.ProfessionalUserID,
		AppointmentID:      cmd.AppointmentID,
		Pathology:          cmd.Pathology,
		Anthropometry:      cmd.Anthropometry,
		Diagnosis:          cmd.Diagnosis,
		Treatment:          cmd.Treatment,
		Notes:              cmd.Notes,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.log.Info("clinical record created",
		zap.String("record_id", rec.ID.String()),
		zap.String("patient_id", cmd.PatientID.String()),
	)
	return rec, nil
}

func (s *ClinicalService) GetRecord(ctx context.Context, professionalID, id uuid.UUID) (*clinical.Record, error) {
	return s.records.GetByID(ctx, professionalID, id)
}

func (s *ClinicalService) ListPatientRecords(ctx context.Context, professionalID, patientID uuid.UUID) ([]*clinical.Record, error) {
	return s.records.ListByPatient(ctx, professionalID, patientID)
}

func (s *ClinicalService) UpdateRecord(ctx context.Context, professionalID, id uuid.UUID, cmd *clinical.UpdateRecordCommand) (*clinical.Record, error) {
	return s.records.Update(ctx, professionalID, id, cmd)
}

func (s *ClinicalService) DeleteRecord(ctx context.Context, professionalID, id uuid.UUID) error {
	return s.records.Delete(ctx, professionalID, id)
}
