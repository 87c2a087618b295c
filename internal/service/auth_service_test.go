package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/medagenda/medagenda/internal/config"
	"github.com/medagenda/medagenda/internal/domain"
	"github.com/medagenda/medagenda/pkg/auth"
)

func testJWT() *auth.JWTManager {
	return auth.NewJWTManager(config.JWTConfig{
		Secret:          "test-secret-test-secret-test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "medagenda-test",
	})
}

func testUser(t *testing.T, password string, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	return &domain.User{
		ID:           uuid.New(),
		DNI:          "12345678Z",
		Email:        "pro@clinic.local",
		PasswordHash: string(hash),
		FullName:     "Pro Fessional",
		Role:         domain.RoleProfessional,
		IsActive:     active,
	}
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials issue tokens", func(t *testing.T) {
		user := testUser(t, "correct-horse", true)
		svc := NewAuthService(&fakeUserRepo{user: user}, testJWT(), nil, zap.NewNop())

		pair, got, err := svc.Login(context.Background(), "12345678Z", "correct-horse")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if pair.AccessToken == "" || pair.RefreshToken == "" {
			t.Error("empty token pair")
		}
		if got.ID != user.ID {
			t.Error("wrong user returned")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := NewAuthService(&fakeUserRepo{user: testUser(t, "correct-horse", true)}, testJWT(), nil, zap.NewNop())

		_, _, err := svc.Login(context.Background(), "12345678Z", "battery-staple")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown dni", func(t *testing.T) {
		svc := NewAuthService(&fakeUserRepo{}, testJWT(), nil, zap.NewNop())

		_, _, err := svc.Login(context.Background(), "00000000X", "whatever")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("disabled account", func(t *testing.T) {
		svc := NewAuthService(&fakeUserRepo{user: testUser(t, "correct-horse", false)}, testJWT(), nil, zap.NewNop())

		_, _, err := svc.Login(context.Background(), "12345678Z", "correct-horse")
		if !errors.Is(err, ErrAccountDisabled) {
			t.Fatalf("expected ErrAccountDisabled, got %v", err)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		svc := NewAuthService(&fakeUserRepo{}, testJWT(), nil, zap.NewNop())

		_, _, err := svc.Login(context.Background(), "", "")
		var validErr *ValidationError
		if !errors.As(err, &validErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestRefresh(t *testing.T) {
	user := testUser(t, "correct-horse", true)
	jwt := testJWT()
	svc := NewAuthService(&fakeUserRepo{user: user}, jwt, nil, zap.NewNop())

	pair, _, err := svc.Login(context.Background(), "12345678Z", "correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	t.Run("refresh token works", func(t *testing.T) {
		next, err := svc.Refresh(context.Background(), pair.RefreshToken)
		if err != nil {
			t.Fatalf("Refresh: %v", err)
		}
		if next.AccessToken == "" {
			t.Error("empty access token")
		}
	})

	t.Run("access token rejected as refresh", func(t *testing.T) {
		if _, err := svc.Refresh(context.Background(), pair.AccessToken); err == nil {
			t.Fatal("access token must not pass as a refresh token")
		}
	})

	t.Run("garbage rejected", func(t *testing.T) {
		if _, err := svc.Refresh(context.Background(), "not.a.token"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("requires current password", func(t *testing.T) {
		user := testUser(t, "old-password", true)
		svc := NewAuthService(&fakeUserRepo{user: user}, testJWT(), nil, zap.NewNop())

		err := svc.ChangePassword(context.Background(), user.ID, "wrong", "new-password-1")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}

		if err := svc.ChangePassword(context.Background(), user.ID, "old-password", "new-password-1"); err != nil {
			t.Fatalf("ChangePassword: %v", err)
		}
	})

	t.Run("rejects short password", func(t *testing.T) {
		user := testUser(t, "old-password", true)
		svc := NewAuthService(&fakeUserRepo{user: user}, testJWT(), nil, zap.NewNop())

		err := svc.ChangePassword(context.Background(), user.ID, "old-password", "short")
		var validErr *ValidationError
		if !errors.As(err, &validErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}
