package clinical

import (
	"time"

	"github.com/google/uuid"
)

// Anthropometry holds the measurements taken during a consultation.
type Anthropometry struct {
	WeightKg           *float64 `json:"weight_kg"`
	HeightCm           *float64 `json:"height_cm"`
	BMI                *float64 `json:"bmi"`
	WaistCircumference *float64 `json:"waist_circumference_cm"`
	BodyFatPercent     *float64 `json:"body_fat_percent"`
}

// Record is the clinical note a professional attaches to a visit.
type Record struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PatientID          uuid.UUID  `gorm:"column:patient_id;type:uuid;not null;index"`
	ProfessionalUserID uuid.UUID  `gorm:"column:professional_user_id;type:uuid;not null;index"`
	AppointmentID      *uuid.UUID `gorm:"column:appointment_id;type:uuid;index"`

	Pathology     string         `gorm:"column:pathology;type:varchar(150);index"`
	Anthropometry *Anthropometry `gorm:"column:anthropometry;serializer:json"`
	Diagnosis     string         `gorm:"column:diagnosis;type:text"`
	Treatment     string         `gorm:"column:treatment;type:text"`
	Notes         string         `gorm:"column:notes;type:text"`
}

func (Record) TableName() string {
	return "clinical_records"
}

type CreateRecordCommand struct {
	PatientID          uuid.UUID
	ProfessionalUserID uuid.UUID
	AppointmentID      *uuid.UUID
	Pathology          string
	Anthropometry      *Anthropometry
	Diagnosis          string
	Treatment          string
	Notes              string
}

type UpdateRecordCommand struct {
	Pathology     *string
	Anthropometry *Anthropometry
	Diagnosis     *string
	Treatment     *string
	Notes         *string
}
