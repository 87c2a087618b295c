package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/medagenda/medagenda/internal/config"
	"github.com/medagenda/medagenda/internal/domain"
	"github.com/medagenda/medagenda/internal/domain/appointment"
	"github.com/medagenda/medagenda/internal/domain/catalog"
	"github.com/medagenda/medagenda/internal/domain/clinical"
	"github.com/medagenda/medagenda/internal/domain/patient"
	"github.com/medagenda/medagenda/internal/domain/schedule"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt:                              true,
		DisableForeignKeyConstraintWhenMigrating: false,
		DisableAutomaticPing:                     false,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: false,
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	models := []any{
		&domain.User{},
		&domain.ProfessionalProfile{},
		&domain.AuditLog{},
		&patient.Patient{},
		&appointment.Appointment{},
		&schedule.WeeklyRule{},
		&schedule.TimeBlock{},
		&clinical.Record{},
		&catalog.Specialty{},
		&catalog.Pathology{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		// The race-safety backstop behind the locked booking check: at
		// most one non-canceled appointment per professional+timestamp.
		{
			name:  "uq_appointments_professional_slot",
			query: `CREATE UNIQUE INDEX IF NOT EXISTS uq_appointments_professional_slot ON appointments (professional_user_id, date_time) WHERE status NOT LIKE 'CANCELED%'`,
		},
		{
			name:  "idx_appointments_professional_day",
			query: `CREATE INDEX IF NOT EXISTS idx_appointments_professional_day ON appointments (professional_user_id, date_time, status)`,
		},
		{
			name:  "idx_time_blocks_range",
			query: `CREATE INDEX IF NOT EXISTS idx_time_blocks_range ON professional_time_blocks (professional_user_id, start_date_time, end_date_time)`,
		},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	return nil
}
