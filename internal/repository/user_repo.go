package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/medagenda/medagenda/internal/domain"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// CreateWithProfile inserts the user and, for professionals, the
// profile row in one transaction.
func (r *UserRepo) CreateWithProfile(ctx context.Context, u *domain.User, profile *domain.ProfessionalProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			if isUniqueViolation(err, "") {
				return domain.ErrUserExists
			}
			return fmt.Errorf("creating user: %w", err)
		}
		if profile != nil {
			profile.UserID = u.ID
			if err := tx.Create(profile).Error; err != nil {
				return fmt.Errorf("creating professional profile: %w", err)
			}
		}
		return nil
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByDNI(ctx context.Context, dni string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("dni = ?", dni).Take(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	if err := r.db.WithContext(ctx).Order("full_name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListPublicProfessionals returns the active professionals with their
// profile data for the public booking flow.
func (r *UserRepo) ListPublicProfessionals(ctx context.Context) ([]*domain.PublicProfessional, error) {
	var out []*domain.PublicProfessional
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.full_name, professional_profiles.specialty, professional_profiles.description").
		Joins("JOIN professional_profiles ON professional_profiles.user_id = users.id").
		Where("users.is_active = ? AND users.role = ? AND users.deleted_at IS NULL", true, domain.RoleProfessional).
		Order("users.full_name ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProfile changes the fields a user may edit on their own
// account. The email unique index catches collisions with other
// accounts.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, fullName, email, phone string) (*domain.User, error) {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"full_name": fullName,
			"email":     email,
			"phone":     phone,
		})
	if res.Error != nil {
		if isUniqueViolation(res.Error, "") {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("updating user profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.ProfessionalProfile, error) {
	var p domain.ProfessionalProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// SaveProfile upserts the professional profile keyed by user id, so a
// professional created before profiles were mandatory can still fill
// theirs in.
func (r *UserRepo) SaveProfile(ctx context.Context, p *domain.ProfessionalProfile) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"specialty", "description", "license_number", "updated_at"}),
		}).
		Create(p).Error
	if err != nil {
		return fmt.Errorf("saving professional profile: %w", err)
	}
	return nil
}

func (r *UserRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) RecordLogin(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("last_login_at", &now).Error
}
