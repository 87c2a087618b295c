package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/medagenda/medagenda/internal/domain/appointment"
	"github.com/medagenda/medagenda/internal/domain/patient"
	"github.com/medagenda/medagenda/pkg/timeutil"
)

type AppointmentRepo struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

// nonCanceled narrows a query to appointments that occupy their slot.
func nonCanceled(tx *gorm.DB) *gorm.DB {
	return tx.Where("status NOT LIKE 'CANCELED%'")
}

// BookSlot is the public-booking write path. The whole protocol runs in
// one transaction so a failure at any step leaves neither a partial
// patient nor a dangling appointment:
//
//  1. a locking read (SELECT ... FOR UPDATE) of any non-canceled
//     appointment at exactly (professionalID, dateTime) — a concurrent
//     transaction touching the same occupied slot blocks here;
//  2. find-or-create of the patient by DNI, refreshing contact fields
//     when the patient already exists;
//  3. the insert, with the partial unique index catching the remaining
//     race where two transactions both saw an empty slot.
//
// Both the locked check and the index violation surface as ErrSlotTaken.
func (r *AppointmentRepo) BookSlot(ctx context.Context, professionalID uuid.UUID, dateTime time.Time, identity patient.Identity, reason string) (*appointment.BookingConfirmation, error) {
	var conf *appointment.BookingConfirmation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing appointment.Appointment
		err := nonCanceled(tx.Clauses(clause.Locking{Strength: "UPDATE"})).
			Where("professional_user_id = ? AND date_time = ?", professionalID, dateTime).
			Take(&existing).Error
		if err == nil {
			return appointment.ErrSlotTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("checking slot occupancy: %w", err)
		}

		p, err := findOrCreatePatient(tx, identity, &professionalID)
		if err != nil {
			return err
		}

		appt := appointment.Appointment{
			ProfessionalUserID: professionalID,
			PatientID:          &p.ID,
			DateTime:           dateTime,
			Status:             appointment.StatusScheduled,
			ReasonForVisit:     reason,
		}
		if err := tx.Create(&appt).Error; err != nil {
			if isUniqueViolation(err, bookingSlotConstraint) {
				return appointment.ErrSlotTaken
			}
			return fmt.Errorf("creating appointment: %w", err)
		}

		conf = &appointment.BookingConfirmation{
			AppointmentID: appt.ID,
			DateTime:      appt.DateTime,
			PatientID:     p.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conf, nil
}

// findOrCreatePatient locks the patient row by DNI so two concurrent
// bookings for the same new patient serialize on the update, then
// refreshes contact fields in place or inserts a fresh record.
func findOrCreatePatient(tx *gorm.DB, identity patient.Identity, createdBy *uuid.UUID) (*patient.Patient, error) {
	var p patient.Patient
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("dni = ?", identity.DNI).
		Take(&p).Error

	switch {
	case err == nil:
		p.FirstName = identity.FirstName
		p.LastName = identity.LastName
		p.Email = identity.Email
		p.Phone = identity.Phone
		if identity.BirthDate != nil {
			p.BirthDate = identity.BirthDate
		}
		if err := tx.Save(&p).Error; err != nil {
			return nil, fmt.Errorf("updating patient contact details: %w", err)
		}
		return &p, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		p = patient.Patient{
			DNI:             identity.DNI,
			FirstName:       identity.FirstName,
			LastName:        identity.LastName,
			Email:           identity.Email,
			Phone:           identity.Phone,
			BirthDate:       identity.BirthDate,
			CreatedByUserID: createdBy,
		}
		if err := tx.Create(&p).Error; err != nil {
			if isUniqueViolation(err, "") {
				// Lost the insert race for the same DNI; re-read the
				// winner's row.
				if rerr := tx.Where("dni = ?", identity.DNI).Take(&p).Error; rerr == nil {
					return &p, nil
				}
			}
			return nil, fmt.Errorf("creating patient: %w", err)
		}
		return &p, nil

	default:
		return nil, fmt.Errorf("looking up patient by DNI: %w", err)
	}
}

// CreateManual inserts an appointment for an already-registered patient
// under the same locked conflict check as BookSlot.
func (r *AppointmentRepo) CreateManual(ctx context.Context, cmd *appointment.ManualCreateCommand) (*appointment.Appointment, error) {
	var created *appointment.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p patient.Patient
		if err := tx.Where("id = ?", cmd.PatientID).Take(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return patient.ErrPatientNotFound
			}
			return fmt.Errorf("loading patient: %w", err)
		}

		var existing appointment.Appointment
		err := nonCanceled(tx.Clauses(clause.Locking{Strength: "UPDATE"})).
			Where("professional_user_id = ? AND date_time = ?", cmd.ProfessionalUserID, cmd.DateTime).
			Take(&existing).Error
		if err == nil {
			return appointment.ErrSlotTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("checking slot occupancy: %w", err)
		}

		appt := appointment.Appointment{
			ProfessionalUserID: cmd.ProfessionalUserID,
			PatientID:          &cmd.PatientID,
			DateTime:           cmd.DateTime,
			Status:             appointment.StatusScheduled,
			ReasonForVisit:     cmd.ReasonForVisit,
		}
		if err := tx.Create(&appt).Error; err != nil {
			if isUniqueViolation(err, bookingSlotConstraint) {
				return appointment.ErrSlotTaken
			}
			return fmt.Errorf("creating appointment: %w", err)
		}

		created = &appt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Reprogram moves an appointment to a new timestamp after re-running
// the conflict check there, excluding the appointment being moved.
func (r *AppointmentRepo) Reprogram(ctx context.Context, professionalID, id uuid.UUID, newDateTime time.Time) (*appointment.Appointment, error) {
	var moved *appointment.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var appt appointment.Appointment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND professional_user_id = ?", id, professionalID).
			Take(&appt).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appointment.ErrAppointmentNotFound
			}
			return fmt.Errorf("loading appointment: %w", err)
		}

		var conflict appointment.Appointment
		err = nonCanceled(tx.Clauses(clause.Locking{Strength: "UPDATE"})).
			Where("professional_user_id = ? AND date_time = ? AND id <> ?", professionalID, newDateTime, id).
			Take(&conflict).Error
		if err == nil {
			return appointment.ErrSlotTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("checking slot occupancy: %w", err)
		}

		appt.DateTime = newDateTime
		if err := tx.Save(&appt).Error; err != nil {
			if isUniqueViolation(err, bookingSlotConstraint) {
				return appointment.ErrSlotTaken
			}
			return fmt.Errorf("updating appointment time: %w", err)
		}

		moved = &appt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, professionalID, id uuid.UUID) (*appointment.Appointment, error) {
	var appt appointment.Appointment
	err := r.db.WithContext(ctx).
		Where("id = ? AND professional_user_id = ?", id, professionalID).
		Take(&appt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appointment.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &appt, nil
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, professionalID, id uuid.UUID, status appointment.Status) (*appointment.Appointment, error) {
	appt, err := r.GetByID(ctx, professionalID, id)
	if err != nil {
		return nil, err
	}
	appt.Status = status
	if err := r.db.WithContext(ctx).Save(appt).Error; err != nil {
		return nil, fmt.Errorf("updating status: %w", err)
	}
	return appt, nil
}

func (r *AppointmentRepo) UpdateNotes(ctx context.Context, professionalID, id uuid.UUID, cmd *appointment.UpdateNotesCommand) (*appointment.Appointment, error) {
	appt, err := r.GetByID(ctx, professionalID, id)
	if err != nil {
		return nil, err
	}
	if cmd.ProfessionalNotes != nil {
		appt.ProfessionalNotes = *cmd.ProfessionalNotes
	}
	if cmd.PatientNotes != nil {
		appt.PatientNotes = *cmd.PatientNotes
	}
	if err := r.db.WithContext(ctx).Save(appt).Error; err != nil {
		return nil, fmt.Errorf("updating notes: %w", err)
	}
	return appt, nil
}

func (r *AppointmentRepo) Delete(ctx context.Context, professionalID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND professional_user_id = ?", id, professionalID).
		Delete(&appointment.Appointment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appointment.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepo) List(ctx context.Context, q *appointment.ListQuery) ([]*appointment.Appointment, error) {
	tx := r.db.WithContext(ctx).
		Where("professional_user_id = ?", q.ProfessionalUserID)

	if q.From != nil {
		tx = tx.Where("date_time >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("date_time <= ?", *q.To)
	}
	if q.PatientDNI != "" {
		tx = tx.Where("patient_id = (SELECT id FROM patients WHERE dni = ?)", q.PatientDNI)
	}

	var appts []*appointment.Appointment
	if err := tx.Order("date_time ASC").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *AppointmentRepo) ListForDay(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]*appointment.Appointment, error) {
	dayStart, dayEnd := timeutil.DayBounds(date)

	var appts []*appointment.Appointment
	err := nonCanceled(r.db.WithContext(ctx)).
		Where("professional_user_id = ? AND date_time BETWEEN ? AND ?", professionalID, dayStart, dayEnd).
		Order("date_time ASC").
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}
