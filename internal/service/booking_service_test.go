package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medagenda/medagenda/internal/domain"
	"github.com/medagenda/medagenda/internal/domain/appointment"
	"github.com/medagenda/medagenda/internal/domain/patient"
)

type fakeApptRepo struct {
	bookErr      error
	booked       []*appointment.PublicBookingCommand
	reprogramErr error
	updated      *appointment.Appointment
	statusSet    appointment.Status
}

func (f *fakeApptRepo) BookSlot(ctx context.Context, professionalID uuid.UUID, dateTime time.Time, identity patient.Identity, reason string) (*appointment.BookingConfirmation, error) {
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	f.booked = append(f.booked, &appointment.PublicBookingCommand{
		ProfessionalUserID: professionalID,
		DateTime:           dateTime,
		Patient:            identity,
		ReasonForVisit:     reason,
	})
	return &appointment.BookingConfirmation{
		AppointmentID: uuid.New(),
		DateTime:      dateTime,
		PatientID:     uuid.New(),
	}, nil
}

func (f *fakeApptRepo) CreateManual(ctx context.Context, cmd *appointment.ManualCreateCommand) (*appointment.Appointment, error) {
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	return &appointment.Appointment{
		ID:                 uuid.New(),
		ProfessionalUserID: cmd.ProfessionalUserID,
		PatientID:          &cmd.PatientID,
		DateTime:           cmd.DateTime,
		Status:             appointment.StatusScheduled,
	}, nil
}

func (f *fakeApptRepo) Reprogram(ctx context.Context, professionalID, id uuid.UUID, newDateTime time.Time) (*appointment.Appointment, error) {
	if f.reprogramErr != nil {
		return nil, f.reprogramErr
	}
	return &appointment.Appointment{ID: id, ProfessionalUserID: professionalID, DateTime: newDateTime}, nil
}

func (f *fakeApptRepo) GetByID(ctx context.Context, professionalID, id uuid.UUID) (*appointment.Appointment, error) {
	if f.updated == nil {
		return nil, appointment.ErrAppointmentNotFound
	}
	return f.updated, nil
}

func (f *fakeApptRepo) UpdateStatus(ctx context.Context, professionalID, id uuid.UUID, status appointment.Status) (*appointment.Appointment, error) {
	if f.updated == nil {
		return nil, appointment.ErrAppointmentNotFound
	}
	f.statusSet = status
	f.updated.Status = status
	return f.updated, nil
}

func (f *fakeApptRepo) UpdateNotes(ctx context.Context, professionalID, id uuid.UUID, cmd *appointment.UpdateNotesCommand) (*appointment.Appointment, error) {
	if f.updated == nil {
		return nil, appointment.ErrAppointmentNotFound
	}
	return f.updated, nil
}

func (f *fakeApptRepo) Delete(ctx context.Context, professionalID, id uuid.UUID) error {
	if f.updated == nil {
		return appointment.ErrAppointmentNotFound
	}
	return nil
}

func (f *fakeApptRepo) List(ctx context.Context, q *appointment.ListQuery) ([]*appointment.Appointment, error) {
	return nil, nil
}

func (f *fakeApptRepo) ListForDay(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]*appointment.Appointment, error) {
	return nil, nil
}

type fakeUserRepo struct {
	user *domain.User
}

func (f *fakeUserRepo) CreateWithProfile(ctx context.Context, u *domain.User, profile *domain.ProfessionalProfile) error {
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if f.user == nil {
		return nil, domain.ErrUserNotFound
	}
	return f.user, nil
}

func (f *fakeUserRepo) GetByDNI(ctx context.Context, dni string) (*domain.User, error) {
	if f.user == nil || f.user.DNI != dni {
		return nil, domain.ErrUserNotFound
	}
	return f.user, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) { return nil, nil }

func (f *fakeUserRepo) ListPublicProfessionals(ctx context.Context) ([]*domain.PublicProfessional, error) {
	return nil, nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error { return nil }

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return nil
}

func (f *fakeUserRepo) RecordLogin(ctx context.Context, id uuid.UUID) error { return nil }

type fakeNotifier struct {
	sent chan string
	err  error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan string, 1)}
}

func (f *fakeNotifier) SendBookingConfirmation(ctx context.Context, to, patientName, professionalName string, dateTime time.Time) error {
	f.sent <- to
	return f.err
}

func validBookingCommand() *appointment.PublicBookingCommand {
	return &appointment.PublicBookingCommand{
		ProfessionalUserID: uuid.New(),
		DateTime:           time.Date(2026, 3, 2, 9, 30, 0, 0, time.Local),
		Patient: patient.Identity{
			DNI:       "12345678Z",
			FirstName: "Ana",
			LastName:  "Garcia",
			Email:     "ana@example.com",
		},
		ReasonForVisit: "first visit",
	}
}

func newBooking(repo *fakeApptRepo, notifier Notifier) *BookingService {
	return NewBookingService(repo, &fakeUserRepo{}, notifier, nil, nil, zap.NewNop())
}

func TestBookPublicAppointment(t *testing.T) {
	t.Run("success returns confirmation and sends email", func(t *testing.T) {
		repo := &fakeApptRepo{}
		notifier := newFakeNotifier()
		svc := newBooking(repo, notifier)

		conf, err := svc.BookPublicAppointment(context.Background(), validBookingCommand())
		if err != nil {
			t.Fatalf("BookPublicAppointment: %v", err)
		}
		if conf.AppointmentID == uuid.Nil {
			t.Error("missing appointment id")
		}
		if len(repo.booked) != 1 {
			t.Fatalf("expected 1 booking, got %d", len(repo.booked))
		}

		select {
		case to := <-notifier.sent:
			if to != "ana@example.com" {
				t.Errorf("email sent to %q", to)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("confirmation email never sent")
		}
	})

	t.Run("conflict surfaces ErrSlotTaken and no email", func(t *testing.T) {
		repo := &fakeApptRepo{bookErr: appointment.ErrSlotTaken}
		notifier := newFakeNotifier()
		svc := newBooking(repo, notifier)

		_, err := svc.BookPublicAppointment(context.Background(), validBookingCommand())
		if !errors.Is(err, appointment.ErrSlotTaken) {
			t.Fatalf("expected ErrSlotTaken, got %v", err)
		}

		select {
		case <-notifier.sent:
			t.Fatal("no email should be sent for a failed booking")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("missing fields rejected before the store", func(t *testing.T) {
		repo := &fakeApptRepo{}
		svc := newBooking(repo, nil)

		cmd := validBookingCommand()
		cmd.Patient.DNI = ""
		cmd.Patient.Email = "not-an-email"

		_, err := svc.BookPublicAppointment(context.Background(), cmd)
		var validErr *ValidationError
		if !errors.As(err, &validErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(validErr.Fields) != 2 {
			t.Errorf("expected 2 field errors, got %v", validErr.Fields)
		}
		if len(repo.booked) != 0 {
			t.Error("invalid booking must not reach the store")
		}
	})

	t.Run("store failure wrapped", func(t *testing.T) {
		storeErr := errors.New("connection reset")
		svc := newBooking(&fakeApptRepo{bookErr: storeErr}, nil)

		_, err := svc.BookPublicAppointment(context.Background(), validBookingCommand())
		if !errors.Is(err, storeErr) {
			t.Fatalf("expected wrapped store error, got %v", err)
		}
	})
}

func TestReprogram(t *testing.T) {
	professionalID, apptID := uuid.New(), uuid.New()
	newSlot := time.Date(2026, 3, 3, 11, 0, 0, 0, time.Local)

	t.Run("moves to new slot", func(t *testing.T) {
		svc := newBooking(&fakeApptRepo{}, nil)

		appt, err := svc.Reprogram(context.Background(), professionalID, apptID, newSlot)
		if err != nil {
			t.Fatalf("Reprogram: %v", err)
		}
		if !appt.DateTime.Equal(newSlot) {
			t.Errorf("DateTime = %v, want %v", appt.DateTime, newSlot)
		}
	})

	t.Run("target conflict surfaces ErrSlotTaken", func(t *testing.T) {
		svc := newBooking(&fakeApptRepo{reprogramErr: appointment.ErrSlotTaken}, nil)

		_, err := svc.Reprogram(context.Background(), professionalID, apptID, newSlot)
		if !errors.Is(err, appointment.ErrSlotTaken) {
			t.Fatalf("expected ErrSlotTaken, got %v", err)
		}
	})

	t.Run("someone else's appointment is not found", func(t *testing.T) {
		svc := newBooking(&fakeApptRepo{reprogramErr: appointment.ErrAppointmentNotFound}, nil)

		_, err := svc.Reprogram(context.Background(), professionalID, apptID, newSlot)
		if !errors.Is(err, appointment.ErrAppointmentNotFound) {
			t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
		}
	})

	t.Run("zero time rejected", func(t *testing.T) {
		svc := newBooking(&fakeApptRepo{}, nil)

		_, err := svc.Reprogram(context.Background(), professionalID, apptID, time.Time{})
		var validErr *ValidationError
		if !errors.As(err, &validErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestUpdateStatus(t *testing.T) {
	professionalID, apptID := uuid.New(), uuid.New()

	t.Run("valid transition applied", func(t *testing.T) {
		repo := &fakeApptRepo{updated: &appointment.Appointment{ID: apptID, Status: appointment.StatusScheduled}}
		svc := newBooking(repo, nil)

		appt, err := svc.UpdateStatus(context.Background(), professionalID, apptID, "no_show")
		if err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
		if appt.Status != appointment.StatusNoShow {
			t.Errorf("Status = %q", appt.Status)
		}
		if repo.statusSet != appointment.StatusNoShow {
			t.Errorf("store received %q", repo.statusSet)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		repo := &fakeApptRepo{updated: &appointment.Appointment{ID: apptID}}
		svc := newBooking(repo, nil)

		_, err := svc.UpdateStatus(context.Background(), professionalID, apptID, "POSTPONED")
		var validErr *ValidationError
		if !errors.As(err, &validErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if repo.statusSet != "" {
			t.Error("invalid status must not reach the store")
		}
	})
}

func TestCreateManualAppointment(t *testing.T) {
	svc := newBooking(&fakeApptRepo{}, nil)

	t.Run("requires patient and time", func(t *testing.T) {
		_, err := svc.CreateManualAppointment(context.Background(), &appointment.ManualCreateCommand{
			ProfessionalUserID: uuid.New(),
		})
		var validErr *ValidationError
		if !errors.As(err, &validErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("unknown patient passes through", func(t *testing.T) {
		failing := newBooking(&fakeApptRepo{bookErr: patient.ErrPatientNotFound}, nil)
		_, err := failing.CreateManualAppointment(context.Background(), &appointment.ManualCreateCommand{
			ProfessionalUserID: uuid.New(),
			PatientID:          uuid.New(),
			DateTime:           time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local),
		})
		if !errors.Is(err, patient.ErrPatientNotFound) {
			t.Fatalf("expected ErrPatientNotFound, got %v", err)
		}
	})
}
