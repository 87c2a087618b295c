package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medagenda/medagenda/internal/domain"
)

// ProfileRepository is the slice of user storage the self-service
// profile endpoints need.
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, fullName, email, phone string) (*domain.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.ProfessionalProfile, error)
	SaveProfile(ctx context.Context, p *domain.ProfessionalProfile) error
}

type UpdateProfileInput struct {
	FullName string
	Email    string
	Phone    string
}

type UpdateProfessionalProfileInput struct {
	Specialty     string
	Description   string
	LicenseNumber string
}

// ProfileService lets an authenticated user read and edit their own
// account and, for professionals, the public-facing profile row.
type ProfileService struct {
	users ProfileRepository
	log   *zap.Logger
}

func NewProfileService(users ProfileRepository, log *zap.Logger) *ProfileService {
	return &ProfileService{users: users, log: log}
}

func (s *ProfileService) GetMe(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *ProfileService) UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*domain.User, error) {
	var fields []string
	if strings.TrimSpace(in.FullName) == "" {
		fields = append(fields, "full_name is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		fields = append(fields, "email is required")
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	u, err := s.users.UpdateProfile(ctx, userID,
		strings.TrimSpace(in.FullName),
		strings.ToLower(strings.TrimSpace(in.Email)),
		strings.TrimSpace(in.Phone),
	)
	if err != nil {
		return nil, err
	}
	s.log.Info("user updated own profile", zap.String("user_id", userID.String()))
	return u, nil
}

// GetProfessionalProfile returns an empty profile rather than an error
// when none exists yet, so the edit form can render blank.
func (s *ProfileService) GetProfessionalProfile(ctx context.Context, userID uuid.UUID) (*domain.ProfessionalProfile, error) {
	p, err := s.users.GetProfile(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return &domain.ProfessionalProfile{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProfileService) UpdateProfessionalProfile(ctx context.Context, userID uuid.UUID, in UpdateProfessionalProfileInput) (*domain.ProfessionalProfile, error) {
	if strings.TrimSpace(in.Specialty) == "" {
		return nil, &ValidationError{Fields: []string{"specialty is required"}}
	}

	p := &domain.ProfessionalProfile{
		UserID:        userID,
		Specialty:     strings.TrimSpace(in.Specialty),
		Description:   in.Description,
		LicenseNumber: strings.TrimSpace(in.LicenseNumber),
	}
	if err := s.users.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("professional profile saved", zap.String("user_id", userID.String()))
	return p, nil
}
