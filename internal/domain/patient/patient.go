package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Patient is a person who books appointments. Patients are keyed by
// their national identity document (DNI); public booking finds or
// creates the record by that key.
type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	DNI       string `gorm:"column:dni;type:varchar(20);uniqueIndex;not null"`
	FirstName string `gorm:"column:first_name;type:varchar(100);not null"`
	LastName  string `gorm:"column:last_name;type:varchar(100);not null"`

	Email     string     `gorm:"column:email;type:varchar(255);not null"`
	Phone     string     `gorm:"column:phone;type:varchar(30)"`
	BirthDate *time.Time `gorm:"column:birth_date;type:date"`

	// Professional whose booking flow or manual entry first created
	// this record.
	CreatedByUserID *uuid.UUID `gorm:"column:created_by_user_id;type:uuid;index"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Identity is the set of fields a public booking submits. Repeat
// bookings with a known DNI refresh the contact fields in place.
type Identity struct {
	DNI       string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	BirthDate *time.Time
}

type CreatePatientCommand struct {
	DNI             string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	BirthDate       *time.Time
	CreatedByUserID *uuid.UUID
}

type UpdatePatientCommand struct {
	DNI       *string
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	BirthDate *time.Time
}
