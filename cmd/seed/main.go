// Command seed fills a development database with demo accounts,
// schedules, patients, and appointments.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/medagenda/medagenda/internal/config"
	"github.com/medagenda/medagenda/internal/domain"
	"github.com/medagenda/medagenda/internal/domain/appointment"
	"github.com/medagenda/medagenda/internal/domain/catalog"
	"github.com/medagenda/medagenda/internal/domain/patient"
	"github.com/medagenda/medagenda/internal/domain/schedule"
	"github.com/medagenda/medagenda/internal/repository"
	"github.com/medagenda/medagenda/pkg/database"
	"github.com/medagenda/medagenda/pkg/logger"
	"github.com/medagenda/medagenda/pkg/timeutil"
)

const (
	numProfessionals = 4
	numPatients      = 40
	seedPassword     = "medagenda123"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("loading configuration: " + err.Error())
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("building logger: " + err.Error())
	}
	defer log.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("connecting to database", zap.Error(err))
	}
	if err := database.Migrate(db, log); err != nil {
		log.Fatal("migrating database", zap.Error(err))
	}

	gofakeit.Seed(42)
	ctx := context.Background()

	users := repository.NewUserRepo(db)
	patients := repository.NewPatientRepo(db)
	appts := repository.NewAppointmentRepo(db)
	rules := repository.NewScheduleRepo(db)
	catalogs := repository.NewCatalogRepo(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hashing seed password", zap.Error(err))
	}

	admin := &domain.User{
		DNI:          "00000000A",
		Email:        "admin@medagenda.local",
		PasswordHash: string(hash),
		FullName:     "Clinic Administrator",
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := users.CreateWithProfile(ctx, admin, nil); err != nil {
		log.Warn("seeding admin", zap.Error(err))
	}

	specialties := []string{"Nutrition", "General Medicine", "Endocrinology", "Cardiology"}
	for _, name := range specialties {
		if err := catalogs.CreateSpecialty(ctx, &catalog.Specialty{Name: name}); err != nil {
			log.Warn("seeding specialty", zap.String("name", name), zap.Error(err))
		}
	}

	professionalIDs := make([]uuid.UUID, 0, numProfessionals)
	for i := 0; i < numProfessionals; i++ {
		u := &domain.User{
			DNI:          fmt.Sprintf("1000000%dB", i),
			Email:        gofakeit.Email(),
			PasswordHash: string(hash),
			FullName:     gofakeit.Name(),
			Role:         domain.RoleProfessional,
			IsActive:     true,
		}
		profile := &domain.ProfessionalProfile{
			Specialty:     specialties[i%len(specialties)],
			Description:   gofakeit.Sentence(12),
			LicenseNumber: gofakeit.Numerify("COL-######"),
		}
		if err := users.CreateWithProfile(ctx, u, profile); err != nil {
			log.Warn("seeding professional", zap.Error(err))
			continue
		}
		professionalIDs = append(professionalIDs, u.ID)

		// Weekday mornings and afternoons, 30-minute slots.
		for day := 1; day <= 5; day++ {
			morning := &schedule.WeeklyRule{
				ProfessionalUserID:  u.ID,
				DayOfWeek:           day,
				StartTime:           "09:00",
				EndTime:             "13:00",
				SlotDurationMinutes: 30,
			}
			afternoon := &schedule.WeeklyRule{
				ProfessionalUserID:  u.ID,
				DayOfWeek:           day,
				StartTime:           "15:00",
				EndTime:             "18:00",
				SlotDurationMinutes: 30,
			}
			for _, rule := range []*schedule.WeeklyRule{morning, afternoon} {
				if err := rules.Create(ctx, rule); err != nil {
					log.Warn("seeding rule", zap.Error(err))
				}
			}
		}
	}

	patientIDs := make([]uuid.UUID, 0, numPatients)
	for i := 0; i < numPatients; i++ {
		bd := gofakeit.DateRange(
			time.Date(1950, 1, 1, 0, 0, 0, 0, time.Local),
			time.Date(2005, 12, 31, 0, 0, 0, 0, time.Local),
		)
		p := &patient.Patient{
			DNI:       gofakeit.Numerify("########") + "C",
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Email:     gofakeit.Email(),
			Phone:     gofakeit.Phone(),
			BirthDate: &bd,
		}
		if err := patients.Create(ctx, p); err != nil {
			log.Warn("seeding patient", zap.Error(err))
			continue
		}
		patientIDs = append(patientIDs, p.ID)
	}

	// A couple of weeks of demo appointments at valid slot starts.
	created := 0
	for day := 1; day <= 14; day++ {
		date := time.Now().AddDate(0, 0, day)
		if wd := timeutil.Weekday(date); wd == 0 || wd == 6 {
			continue
		}
		for _, proID := range professionalIDs {
			for _, clock := range []string{"09:00", "10:30", "15:00"} {
				if gofakeit.Bool() {
					continue
				}
				slot, err := timeutil.AtClock(date, clock)
				if err != nil {
					continue
				}
				_, err = appts.CreateManual(ctx, &appointment.ManualCreateCommand{
					ProfessionalUserID: proID,
					PatientID:          patientIDs[gofakeit.Number(0, len(patientIDs)-1)],
					DateTime:           slot,
					ReasonForVisit:     gofakeit.Sentence(6),
				})
				if err != nil {
					log.Warn("seeding appointment", zap.Error(err))
					continue
				}
				created++
			}
		}
	}

	log.Info("seed complete",
		zap.Int("professionals", len(professionalIDs)),
		zap.Int("patients", len(patientIDs)),
		zap.Int("appointments", created),
		zap.String("password", seedPassword),
	)
}
