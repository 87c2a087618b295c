package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("a user with that DNI or email already exists")
	ErrProfileNotFound = errors.New("professional profile not found")
)

type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleProfessional Role = "PROFESSIONAL"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleProfessional:
		return true
	}
	return false
}

// User is a staff account: administrators and healthcare professionals.
// Patients do not log in; they book through the public endpoints.
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	DNI          string `gorm:"column:dni;type:varchar(20);uniqueIndex;not null"`
	Email        string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
	FullName     string `gorm:"column:full_name;type:varchar(200);not null"`
	Phone        string `gorm:"column:phone;type:varchar(30)"`
	Role         Role   `gorm:"column:role;type:varchar(30);not null;index"`

	IsActive    bool       `gorm:"column:is_active;default:true;index"`
	LastLoginAt *time.Time `gorm:"column:last_login_at"`
}

func (User) TableName() string {
	return "users"
}

// ProfessionalProfile carries the public-facing attributes of a
// professional account; one row per user with RoleProfessional.
type ProfessionalProfile struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Specialty     string `gorm:"column:specialty;type:varchar(100);not null"`
	Description   string `gorm:"column:description;type:text"`
	LicenseNumber string `gorm:"column:license_number;type:varchar(50)"`
}

func (ProfessionalProfile) TableName() string {
	return "professional_profiles"
}

// PublicProfessional is the projection served to the booking UI when a
// patient picks who to see.
type PublicProfessional struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	Specialty   string    `json:"specialty"`
	Description string    `json:"description"`
}

type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionRead   AuditAction = "read"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
	ActionLogin  AuditAction = "login"
	ActionBook   AuditAction = "book"
)

type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccurredAt time.Time `gorm:"autoCreateTime;index"`

	UserID    *uuid.UUID `gorm:"column:user_id;type:uuid;index"` // nil for public booking
	UserRole  Role       `gorm:"column:user_role;type:varchar(30)"`
	IPAddress string     `gorm:"column:ip_address;type:varchar(45)"`

	Action       AuditAction `gorm:"column:action;type:varchar(20);not null;index"`
	ResourceType string      `gorm:"column:resource_type;type:varchar(50);not null;index"`
	ResourceID   string      `gorm:"column:resource_id;type:varchar(50);index"`

	RequestID string `gorm:"column:request_id;type:varchar(50);index"`
	Changes   string `gorm:"column:changes;type:jsonb"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"` // Always "Bearer"
}

type Claims struct {
	UserID   uuid.UUID `json:"sub"`
	DNI      string    `json:"dni"`
	FullName string    `json:"full_name"`
	Role     Role      `json:"role"`
}
