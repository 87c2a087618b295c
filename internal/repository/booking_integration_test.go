package repository

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/medagenda/medagenda/internal/domain"
	"github.com/medagenda/medagenda/internal/domain/appointment"
	"github.com/medagenda/medagenda/internal/domain/patient"
	"github.com/medagenda/medagenda/pkg/database"
)

// testDB connects to the database named by TEST_DATABASE_URL and runs
// migrations. Tests that need it are skipped when the variable is
// unset, so the suite stays runnable without infrastructure.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database-backed test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("connecting to test database: %v", err)
	}
	if err := database.Migrate(db, zap.NewNop()); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func seedProfessional(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()

	u := &domain.User{
		DNI:          "T" + uuid.NewString()[:8],
		Email:        uuid.NewString() + "@test.local",
		PasswordHash: "x",
		FullName:     "Test Professional",
		Role:         domain.RoleProfessional,
		IsActive:     true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seeding professional: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM appointments WHERE professional_user_id = ?", u.ID)
		db.Exec("DELETE FROM users WHERE id = ?", u.ID)
	})
	return u.ID
}

func TestBookSlotConcurrent(t *testing.T) {
	db := testDB(t)
	repo := NewAppointmentRepo(db)
	professionalID := seedProfessional(t, db)

	slot := time.Now().AddDate(0, 0, 7).Truncate(time.Hour)

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.BookSlot(context.Background(), professionalID, slot, patient.Identity{
				DNI:       "C" + uuid.NewString()[:8],
				FirstName: "Worker",
				LastName:  "Number",
				Email:     "w@test.local",
			}, "concurrency test")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, appointment.ErrSlotTaken):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("exactly one booking must win, got %d", successes)
	}
	if conflicts != workers-1 {
		t.Errorf("expected %d conflicts, got %d", workers-1, conflicts)
	}

	var count int64
	db.Model(&appointment.Appointment{}).
		Where("professional_user_id = ? AND date_time = ? AND status NOT LIKE 'CANCELED%'", professionalID, slot).
		Count(&count)
	if count != 1 {
		t.Errorf("expected 1 stored appointment, found %d", count)
	}
}

func TestBookSlotReopensAfterCancel(t *testing.T) {
	db := testDB(t)
	repo := NewAppointmentRepo(db)
	professionalID := seedProfessional(t, db)

	slot := time.Now().AddDate(0, 0, 8).Truncate(time.Hour)
	identity := patient.Identity{
		DNI:       "C" + uuid.NewString()[:8],
		FirstName: "Ana",
		LastName:  "Garcia",
		Email:     "ana@test.local",
	}

	conf, err := repo.BookSlot(context.Background(), professionalID, slot, identity, "first")
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}

	if _, err := repo.BookSlot(context.Background(), professionalID, slot, identity, "second"); !errors.Is(err, appointment.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}

	if _, err := repo.UpdateStatus(context.Background(), professionalID, conf.AppointmentID, appointment.StatusCanceledPatient); err != nil {
		t.Fatalf("canceling: %v", err)
	}

	// Canceled appointments free their slot.
	if _, err := repo.BookSlot(context.Background(), professionalID, slot, identity, "retry"); err != nil {
		t.Fatalf("rebooking a canceled slot: %v", err)
	}
}

func TestReprogramConflict(t *testing.T) {
	db := testDB(t)
	repo := NewAppointmentRepo(db)
	professionalID := seedProfessional(t, db)

	slotA := time.Now().AddDate(0, 0, 9).Truncate(time.Hour)
	slotB := slotA.Add(time.Hour)

	identity := patient.Identity{
		DNI: "C" + uuid.NewString()[:8], FirstName: "A", LastName: "B", Email: "ab@test.local",
	}
	confA, err := repo.BookSlot(context.Background(), professionalID, slotA, identity, "a")
	if err != nil {
		t.Fatalf("booking slot A: %v", err)
	}
	identity.DNI = "C" + uuid.NewString()[:8]
	if _, err := repo.BookSlot(context.Background(), professionalID, slotB, identity, "b"); err != nil {
		t.Fatalf("booking slot B: %v", err)
	}

	if _, err := repo.Reprogram(context.Background(), professionalID, confA.AppointmentID, slotB); !errors.Is(err, appointment.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken moving onto an occupied slot, got %v", err)
	}

	// Reprogramming onto its own slot is a no-op move, not a conflict.
	if _, err := repo.Reprogram(context.Background(), professionalID, confA.AppointmentID, slotA); err != nil {
		t.Fatalf("reprogramming onto own slot: %v", err)
	}

	if _, err := repo.Reprogram(context.Background(), uuid.New(), confA.AppointmentID, slotB); !errors.Is(err, appointment.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound for foreign professional, got %v", err)
	}
}
