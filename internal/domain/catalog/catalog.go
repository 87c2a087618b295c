package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Specialty is an entry in the clinic-wide specialty catalog shown on
// professional profiles.
type Specialty struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name        string `gorm:"column:name;type:varchar(150);uniqueIndex;not null"`
	Description string `gorm:"column:description;type:text"`
}

func (Specialty) TableName() string {
	return "specialties"
}

// Pathology is an entry in the pathology catalog used when tagging
// clinical records.
type Pathology struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name        string `gorm:"column:name;type:varchar(150);uniqueIndex;not null"`
	Description string `gorm:"column:description;type:text"`
}

func (Pathology) TableName() string {
	return "pathologies"
}
