package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/medagenda/medagenda/internal/domain"
)

type CreateUserInput struct {
	DNI           string
	Email         string
	Password      string
	FullName      string
	Role          string
	Specialty     string
	Description   string
	LicenseNumber string
}

// AdminService manages staff accounts. Only admin-role callers reach
// it; the handler layer enforces that.
type AdminService struct {
	users UserRepository
	log   *zap.Logger
}

func NewAdminService(users UserRepository, log *zap.Logger) *AdminService {
	return &AdminService{users: users, log: log}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// CreateUser creates a staff account; professional accounts get their
// public profile row in the same transaction.
func (s *AdminService) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	var fields []string
	if strings.TrimSpace(in.DNI) == "" {
		fields = append(fields, "dni is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		fields = append(fields, "email is required")
	}
	if strings.TrimSpace(in.FullName) == "" {
		fields = append(fields, "full_name is required")
	}
	if len(in.Password) < 8 {
		fields = append(fields, "password must be at least 8 characters")
	}
	role := domain.Role(strings.ToUpper(strings.TrimSpace(in.Role)))
	if !role.IsValid() {
		fields = append(fields, "role must be ADMIN or PROFESSIONAL")
	}
	if role == domain.RoleProfessional && strings.TrimSpace(in.Specialty) == "" {
		fields = append(fields, "specialty is required for professionals")
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		DNI:          strings.TrimSpace(in.DNI),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Role:         role,
		IsActive:     true,
	}

	var profile *domain.ProfessionalProfile
	if role == domain.RoleProfessional {
		profile = &domain.ProfessionalProfile{
			Specialty:     in.Specialty,
			Description:   in.Description,
			LicenseNumber: in.LicenseNumber,
		}
	}

	if err := s.users.CreateWithProfile(ctx, user, profile); err != nil {
		return nil, err
	}

	s.log.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)),
	)
	return user, nil
}

func (s *AdminService) SetUserActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.users.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.log.Info("user active flag changed",
		zap.String("user_id", id.String()),
		zap.Bool("active", active),
	)
	return nil
}

// ResetPassword sets a new password without knowing the old one.
func (s *AdminService) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	if len(newPassword) < 8 {
		return &ValidationError{Fields: []string{"password must be at least 8 characters"}}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, id, string(hash)); err != nil {
		return err
	}
	s.log.Info("password reset by admin", zap.String("user_id", id.String()))
	return nil
}
