package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medagenda/medagenda/internal/domain/patient"
)

type PatientService struct {
	patients patient.Repository
	log      *zap.Logger
}

func NewPatientService(patients patient.Repository, log *zap.Logger) *PatientService {
	return &PatientService{patients: patients, log: log}
}

func (s *PatientService) ListPatients(ctx context.Context, professionalID uuid.UUID) ([]*patient.Patient, error) {
	return s.patients.ListByProfessional(ctx, professionalID)
}

func (s *PatientService) GetPatient(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	return s.patients.GetByID(ctx, id)
}

// LookupByDNI serves the public booking form pre-fill: a returning
// patient types their DNI and gets their stored contact data back.
func (s *PatientService) LookupByDNI(ctx context.Context, dni string) (*patient.Patient, error) {
	dni = strings.TrimSpace(dni)
	if dni == "" {
		return nil, &ValidationError{Fields: []string{"dni is required"}}
	}
	return s.patients.GetByDNI(ctx, dni)
}

func (s *PatientService) CreatePatient(ctx context.Context, cmd *patient.CreatePatientCommand) (*patient.Patient, error) {
	var fields []string
	if strings.TrimSpace(cmd.DNI) == "" {
		fields = append(fields, "dni is required")
	}
	if strings.TrimSpace(cmd.FirstName) == "" {
		fields = append(fields, "first_name is required")
	}
	if strings.TrimSpace(cmd.LastName) == "" {
		fields = append(fields, "last_name is required")
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	p := &patient.Patient{
		DNI:             strings.TrimSpace(cmd.DNI),
		FirstName:       cmd.FirstName,
		LastName:        cmd.LastName,
		Email:           cmd.Email,
		Phone:           cmd.Phone,
		BirthDate:       cmd.BirthDate,
		CreatedByUserID: cmd.CreatedByUserID,
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info("patient created", zap.String("patient_id", p.ID.String()))
	return p, nil
}

func (s *PatientService) UpdatePatient(ctx context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	if cmd.DNI != nil && strings.TrimSpace(*cmd.DNI) == "" {
		return nil, &ValidationError{Fields: []string{"dni cannot be empty"}}
	}
	return s.patients.Update(ctx, id, cmd)
}

// PurgePatient hard-deletes the patient and everything tied to them.
// Admin only; the handler layer enforces the role.
func (s *PatientService) PurgePatient(ctx context.Context, id uuid.UUID) error {
	if err := s.patients.Purge(ctx, id); err != nil {
		return err
	}
	s.log.Warn("patient purged", zap.String("patient_id", id.String()))
	return nil
}
