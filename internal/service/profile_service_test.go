package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medagenda/medagenda/internal/domain"
)

type fakeProfileRepo struct {
	user    *domain.User
	profile *domain.ProfessionalProfile

	updateErr error
	saved     *domain.ProfessionalProfile
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, domain.ErrUserNotFound
	}
	return f.user, nil
}

func (f *fakeProfileRepo) UpdateProfile(_ context.Context, id uuid.UUID, fullName, email, phone string) (*domain.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.user == nil || f.user.ID != id {
		return nil, domain.ErrUserNotFound
	}
	f.user.FullName = fullName
	f.user.Email = email
	f.user.Phone = phone
	return f.user, nil
}

func (f *fakeProfileRepo) GetProfile(_ context.Context, userID uuid.UUID) (*domain.ProfessionalProfile, error) {
	if f.profile == nil || f.profile.UserID != userID {
		return nil, domain.ErrProfileNotFound
	}
	return f.profile, nil
}

func (f *fakeProfileRepo) SaveProfile(_ context.Context, p *domain.ProfessionalProfile) error {
	f.saved = p
	f.profile = p
	return nil
}

func TestUpdateMe(t *testing.T) {
	id := uuid.New()
	repo := &fakeProfileRepo{user: &domain.User{
		ID:       id,
		DNI:      "12345678A",
		Email:    "old@clinic.test",
		FullName: "Old Name",
	}}
	svc := NewProfileService(repo, zap.NewNop())

	u, err := svc.UpdateMe(context.Background(), id, UpdateProfileInput{
		FullName: "  New Name ",
		Email:    " NEW@Clinic.Test ",
		Phone:    "600111222",
	})
	if err != nil {
		t.Fatalf("UpdateMe: %v", err)
	}
	if u.FullName != "New Name" {
		t.Errorf("full name not trimmed: %q", u.FullName)
	}
	if u.Email != "new@clinic.test" {
		t.Errorf("email not normalized: %q", u.Email)
	}
	if u.Phone != "600111222" {
		t.Errorf("phone = %q", u.Phone)
	}
}

func TestUpdateMeValidation(t *testing.T) {
	svc := NewProfileService(&fakeProfileRepo{}, zap.NewNop())

	_, err := svc.UpdateMe(context.Background(), uuid.New(), UpdateProfileInput{
		FullName: "  ",
		Email:    "",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Errorf("expected 2 field errors, got %v", verr.Fields)
	}
}

func TestUpdateMeEmailTaken(t *testing.T) {
	svc := NewProfileService(&fakeProfileRepo{updateErr: domain.ErrUserExists}, zap.NewNop())

	_, err := svc.UpdateMe(context.Background(), uuid.New(), UpdateProfileInput{
		FullName: "Someone",
		Email:    "taken@clinic.test",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestGetProfessionalProfileMissingIsEmpty(t *testing.T) {
	id := uuid.New()
	svc := NewProfileService(&fakeProfileRepo{}, zap.NewNop())

	p, err := svc.GetProfessionalProfile(context.Background(), id)
	if err != nil {
		t.Fatalf("GetProfessionalProfile: %v", err)
	}
	if p.UserID != id || p.Specialty != "" || p.Description != "" {
		t.Errorf("expected an empty profile for %s, got %+v", id, p)
	}
}

func TestUpdateProfessionalProfile(t *testing.T) {
	id := uuid.New()
	repo := &fakeProfileRepo{}
	svc := NewProfileService(repo, zap.NewNop())

	p, err := svc.UpdateProfessionalProfile(context.Background(), id, UpdateProfessionalProfileInput{
		Specialty:   " Cardiology ",
		Description: "Adult cardiology, 15 years of practice.",
	})
	if err != nil {
		t.Fatalf("UpdateProfessionalProfile: %v", err)
	}
	if repo.saved == nil {
		t.Fatal("profile was not persisted")
	}
	if p.Specialty != "Cardiology" {
		t.Errorf("specialty not trimmed: %q", p.Specialty)
	}

	// Saving again overwrites, it never duplicates.
	if _, err := svc.UpdateProfessionalProfile(context.Background(), id, UpdateProfessionalProfileInput{
		Specialty: "Pediatrics",
	}); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err := svc.GetProfessionalProfile(context.Background(), id)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Specialty != "Pediatrics" {
		t.Errorf("expected overwritten specialty, got %q", got.Specialty)
	}
}

func TestUpdateProfessionalProfileValidation(t *testing.T) {
	svc := NewProfileService(&fakeProfileRepo{}, zap.NewNop())

	_, err := svc.UpdateProfessionalProfile(context.Background(), uuid.New(), UpdateProfessionalProfileInput{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
