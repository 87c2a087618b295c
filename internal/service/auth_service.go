package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/medagenda/medagenda/internal/domain"
	"github.com/medagenda/medagenda/pkg/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// UserRepository is the persistence surface the auth and admin flows
// need from the user store.
type UserRepository interface {
	CreateWithProfile(ctx context.Context, u *domain.User, profile *domain.ProfessionalProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDNI(ctx context.Context, dni string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListPublicProfessionals(ctx context.Context) ([]*domain.PublicProfessional, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	RecordLogin(ctx context.Context, id uuid.UUID) error
}

// dummyHash is compared against when the DNI does not resolve to a
// user, so a miss costs the same as a wrong password.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type AuthService struct {
	users UserRepository
	jwt   *auth.JWTManager
	audit *AuditService
	log   *zap.Logger
}

func NewAuthService(users UserRepository, jwt *auth.JWTManager, audit *AuditService, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwt: jwt, audit: audit, log: log}
}

// Login authenticates by DNI and password and issues a token pair.
// Unknown DNI, wrong password and disabled accounts are reported with
// the same delay profile.
func (s *AuthService) Login(ctx context.Context, dni, password string) (*domain.TokenPair, *domain.User, error) {
	if dni == "" || password == "" {
		return nil, nil, &ValidationError{Fields: []string{"dni and password are required"}}
	}

	user, err := s.users.GetByDNI(ctx, dni)
	if err != nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		s.log.Info("login failed: unknown dni", zap.String("dni", dni))
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Info("login failed: wrong password", zap.String("user_id", user.ID.String()))
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	pair, err := s.jwt.GenerateTokenPair(&domain.Claims{
		UserID:   user.ID,
		DNI:      user.DNI,
		FullName: user.FullName,
		Role:     user.Role,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("issuing tokens: %w", err)
	}

	if err := s.users.RecordLogin(ctx, user.ID); err != nil {
		s.log.Warn("recording login timestamp failed", zap.Error(err))
	}

	if s.audit != nil {
		s.audit.LogAsync(ctx, AuditEntry{
			UserID:       user.ID,
			UserRole:     string(user.Role),
			Action:       string(domain.ActionLogin),
			ResourceType: "user",
			ResourceID:   user.ID.String(),
		})
	}

	s.log.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	return pair, user, nil
}

// Refresh exchanges a valid refresh token for a new token pair, after
// re-checking the account still exists and is active.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.jwt.GenerateTokenPair(&domain.Claims{
		UserID:   user.ID,
		DNI:      user.DNI,
		FullName: user.FullName,
		Role:     user.Role,
	})
}

// ChangePassword verifies the current password before storing the new
// hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	if len(next) < 8 {
		return &ValidationError{Fields: []string{"new password must be at least 8 characters"}}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.log.Info("password changed", zap.String("user_id", userID.String()))
	return nil
}
