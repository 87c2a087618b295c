package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medagenda/medagenda/internal/domain"
	"github.com/medagenda/medagenda/internal/domain/appointment"
	"github.com/medagenda/medagenda/internal/domain/patient"
	"github.com/medagenda/medagenda/pkg/metrics"
)

// Notifier delivers booking confirmations. Delivery is best effort and
// never fails the booking.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, to string, patientName string, professionalName string, dateTime time.Time) error
}

type BookingService struct {
	appts    appointment.Repository
	users    UserRepository
	notifier Notifier
	audit    *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
}

func NewBookingService(
	appts appointment.Repository,
	users UserRepository,
	notifier Notifier,
	audit *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *BookingService {
	return &BookingService{
		appts:    appts,
		users:    users,
		notifier: notifier,
		audit:    audit,
		metrics:  m,
		log:      log,
	}
}

// BookPublicAppointment handles the unauthenticated booking flow. The
// patient record is found or created by DNI inside the booking
// transaction; a conflicting slot surfaces as appointment.ErrSlotTaken.
func (s *BookingService) BookPublicAppointment(ctx context.Context, cmd *appointment.PublicBookingCommand) (*appointment.BookingConfirmation, error) {
	if err := validatePublicBooking(cmd); err != nil {
		return nil, err
	}

	conf, err := s.appts.BookSlot(ctx, cmd.ProfessionalUserID, cmd.DateTime, cmd.Patient, cmd.ReasonForVisit)
	if err != nil {
		s.countBooking(err)
		if errors.Is(err, appointment.ErrSlotTaken) {
			s.log.Info("booking conflict",
				zap.String("professional_id", cmd.ProfessionalUserID.String()),
				zap.Time("date_time", cmd.DateTime),
			)
			return nil, err
		}
		return nil, fmt.Errorf("booking appointment: %w", err)
	}
	s.countBooking(nil)

	s.log.Info("appointment booked",
		zap.String("appointment_id", conf.AppointmentID.String()),
		zap.String("professional_id", cmd.ProfessionalUserID.String()),
		zap.Time("date_time", conf.DateTime),
	)

	if s.audit != nil {
		s.audit.LogAsync(ctx, AuditEntry{
			UserRole:     "PUBLIC",
			Action:       string(domain.ActionBook),
			ResourceType: "appointment",
			ResourceID:   conf.AppointmentID.String(),
		})
	}

	s.sendConfirmationAsync(cmd, conf)

	return conf, nil
}

// CreateManualAppointment creates an appointment for an existing patient
// on behalf of the authenticated professional.
func (s *BookingService) CreateManualAppointment(ctx context.Context, cmd *appointment.ManualCreateCommand) (*appointment.Appointment, error) {
	var fields []string
	if cmd.PatientID == uuid.Nil {
		fields = append(fields, "patient_id is required")
	}
	if cmd.DateTime.IsZero() {
		fields = append(fields, "date_time is required")
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	appt, err := s.appts.CreateManual(ctx, cmd)
	if err != nil {
		s.countBooking(err)
		return nil, err
	}
	s.countBooking(nil)

	s.log.Info("appointment created manually",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("professional_id", cmd.ProfessionalUserID.String()),
		zap.Time("date_time", appt.DateTime),
	)
	return appt, nil
}

// Reprogram moves an appointment to a new slot. Conflicts at the target
// slot surface as appointment.ErrSlotTaken; appointments owned by other
// professionals surface as appointment.ErrAppointmentNotFound.
func (s *BookingService) Reprogram(ctx context.Context, professionalID, id uuid.UUID, newDateTime time.Time) (*appointment.Appointment, error) {
	if newDateTime.IsZero() {
		return nil, &ValidationError{Fields: []string{"date_time is required"}}
	}

	appt, err := s.appts.Reprogram(ctx, professionalID, id, newDateTime)
	if err != nil {
		return nil, err
	}

	s.log.Info("appointment reprogrammed",
		zap.String("appointment_id", id.String()),
		zap.Time("new_date_time", newDateTime),
	)
	return appt, nil
}

func (s *BookingService) GetAppointment(ctx context.Context, professionalID, id uuid.UUID) (*appointment.Appointment, error) {
	return s.appts.GetByID(ctx, professionalID, id)
}

// UpdateStatus sets the appointment status. Every transition is legal
// and logged; unknown status strings are rejected up front.
func (s *BookingService) UpdateStatus(ctx context.Context, professionalID, id uuid.UUID, rawStatus string) (*appointment.Appointment, error) {
	status, err := appointment.ParseStatus(rawStatus)
	if err != nil {
		return nil, &ValidationError{Fields: []string{"status must be one of SCHEDULED, CONFIRMED, COMPLETED, CANCELED_PROFESSIONAL, CANCELED_PATIENT, NO_SHOW"}}
	}

	appt, err := s.appts.UpdateStatus(ctx, professionalID, id, status)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.AppointmentsTotal.WithLabelValues(string(status)).Inc()
	}
	s.log.Info("appointment status changed",
		zap.String("appointment_id", id.String()),
		zap.String("status", string(status)),
	)
	return appt, nil
}

func (s *BookingService) UpdateNotes(ctx context.Context, professionalID, id uuid.UUID, cmd *appointment.UpdateNotesCommand) (*appointment.Appointment, error) {
	if cmd.ProfessionalNotes == nil && cmd.PatientNotes == nil {
		return nil, &ValidationError{Fields: []string{"at least one of professional_notes or patient_notes is required"}}
	}
	return s.appts.UpdateNotes(ctx, professionalID, id, cmd)
}

func (s *BookingService) DeleteAppointment(ctx context.Context, professionalID, id uuid.UUID) error {
	if err := s.appts.Delete(ctx, professionalID, id); err != nil {
		return err
	}
	s.log.Info("appointment deleted", zap.String("appointment_id", id.String()))
	return nil
}

func (s *BookingService) ListAppointments(ctx context.Context, q *appointment.ListQuery) ([]*appointment.Appointment, error) {
	return s.appts.List(ctx, q)
}

func (s *BookingService) countBooking(err error) {
	if s.metrics == nil {
		return
	}
	switch {
	case err == nil:
		s.metrics.BookingsTotal.WithLabelValues("created").Inc()
	case errors.Is(err, appointment.ErrSlotTaken):
		s.metrics.BookingsTotal.WithLabelValues("conflict").Inc()
	default:
		s.metrics.BookingsTotal.WithLabelValues("error").Inc()
	}
}

// sendConfirmationAsync fires the confirmation email without blocking
// or failing the booking path.
func (s *BookingService) sendConfirmationAsync(cmd *appointment.PublicBookingCommand, conf *appointment.BookingConfirmation) {
	if s.notifier == nil || cmd.Patient.Email == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		professionalName := ""
		if s.users != nil {
			if u, err := s.users.GetByID(ctx, cmd.ProfessionalUserID); err == nil {
				professionalName = u.FullName
			}
		}

		patientName := strings.TrimSpace(cmd.Patient.FirstName + " " + cmd.Patient.LastName)
		if err := s.notifier.SendBookingConfirmation(ctx, cmd.Patient.Email, patientName, professionalName, conf.DateTime); err != nil {
			s.log.Warn("confirmation email failed",
				zap.String("appointment_id", conf.AppointmentID.String()),
				zap.Error(err),
			)
		}
	}()
}

func validatePublicBooking(cmd *appointment.PublicBookingCommand) error {
	var fields []string
	if cmd.ProfessionalUserID == uuid.Nil {
		fields = append(fields, "professional_id is required")
	}
	if cmd.DateTime.IsZero() {
		fields = append(fields, "date_time is required")
	}
	fields = append(fields, validateIdentity(&cmd.Patient)...)
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateIdentity(id *patient.Identity) []string {
	var fields []string
	if strings.TrimSpace(id.DNI) == "" {
		fields = append(fields, "dni is required")
	}
	if strings.TrimSpace(id.FirstName) == "" {
		fields = append(fields, "first_name is required")
	}
	if strings.TrimSpace(id.LastName) == "" {
		fields = append(fields, "last_name is required")
	}
	if strings.TrimSpace(id.Email) == "" {
		fields = append(fields, "email is required")
	} else if !strings.Contains(id.Email, "@") {
		fields = append(fields, "email is not valid")
	}
	return fields
}
