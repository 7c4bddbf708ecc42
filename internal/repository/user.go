// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"chronicle/internal/cache"
	"chronicle/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users and author profiles.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	GetAuthorProfile(ctx context.Context, userID uint) (*models.AuthorProfile, error)
	GetAuthorProfileByID(ctx context.Context, id uint) (*models.AuthorProfile, error)
	CreateAuthorProfile(ctx context.Context, profile *models.AuthorProfile) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("AuthorProfile").First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByGoogleID returns (nil, nil) when no user exists for the subject.
func (r *userRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("AuthorProfile").Where("google_id = ?", googleID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// PostgreSQL unique violation SQLSTATE 23505
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite (tests) reports constraint violations as plain strings
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

// GetAuthorProfile returns (nil, nil) when the user holds no profile.
func (r *userRepository) GetAuthorProfile(ctx context.Context, userID uint) (*models.AuthorProfile, error) {
	var profile models.AuthorProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *userRepository) GetAuthorProfileByID(ctx context.Context, id uint) (*models.AuthorProfile, error) {
	var profile models.AuthorProfile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Author profile", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *userRepository) CreateAuthorProfile(ctx context.Context, profile *models.AuthorProfile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Author profile already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, profile.UserID)
	return nil
}
