// Package repository holds the gorm-backed implementations of the
// domain repository interfaces. All constructors take the shared *gorm.DB;
// connection pooling lives in pkg/database.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation = "23505"

	// Partial unique index created in pkg/database: at most one
	// non-canceled appointment per (professional, timestamp).
	bookingSlotConstraint = "uq_appointments_professional_slot"
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation, optionally restricted to a named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
