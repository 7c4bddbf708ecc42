// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"chronicle/internal/cache"
	"chronicle/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GalleryRepository defines the interface for gallery data operations
type GalleryRepository interface {
	Create(ctx context.Context, gallery *models.Gallery) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Gallery, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Gallery, error)
	Delete(ctx context.Context, id uint) error
	DeleteImage(ctx context.Context, galleryID, imageID uint) error
	IsLiked(ctx context.Context, userID, galleryID uint) (bool, error)
	Like(ctx context.Context, userID, galleryID uint) error
	Unlike(ctx context.Context, userID, galleryID uint) error
}

type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository creates a new gallery repository
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) Create(ctx context.Context, gallery *models.Gallery) error {
	err := r.db.WithContext(ctx).Create(gallery).Error
	if err == nil {
		cache.InvalidateGalleries(ctx)
	}
	return err
}

func (r *galleryRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Gallery, error) {
	var gallery models.Gallery
	err := r.applyGalleryDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Preload("Images").
		First(&gallery, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Gallery", id)
		}
		return nil, err
	}
	return &gallery, nil
}

func (r *galleryRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Gallery, error) {
	var galleries []*models.Gallery
	err := r.applyGalleryDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Preload("Images").
		Order("galleries.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&galleries).Error
	return galleries, err
}

// applyGalleryDetails derives the like counter and membership from gallery_likes.
func (r *galleryRepository) applyGalleryDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "galleries.*, " +
		"(SELECT COUNT(*) FROM gallery_likes WHERE gallery_likes.gallery_id = galleries.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM gallery_likes WHERE gallery_likes.gallery_id = galleries.id AND gallery_likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *galleryRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gallery_id = ?", id).Delete(&models.GalleryImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Gallery{}, id).Error
	})
	if err == nil {
		cache.InvalidateGalleries(ctx)
	}
	return err
}

func (r *galleryRepository) DeleteImage(ctx context.Context, galleryID, imageID uint) error {
	result := r.db.WithContext(ctx).
		Where("gallery_id = ?", galleryID).
		Delete(&models.GalleryImage{}, imageID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Gallery image", imageID)
	}
	cache.InvalidateGalleries(ctx)
	return nil
}

func (r *galleryRepository) IsLiked(ctx context.Context, userID, galleryID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.GalleryLike{}).
		Where("user_id = ? AND gallery_id = ?", userID, galleryID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *galleryRepository) Like(ctx context.Context, userID, galleryID uint) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "gallery_id"}},
			DoNothing: true,
		}).
		Create(&models.GalleryLike{UserID: userID, GalleryID: galleryID}).Error
	if err == nil {
		cache.InvalidateGalleries(ctx)
	}
	return err
}

func (r *galleryRepository) Unlike(ctx context.Context, userID, galleryID uint) error {
	err := r.db.WithContext(ctx).Unscoped().Where("user_id = ? AND gallery_id = ?", userID, galleryID).Delete(&models.GalleryLike{}).Error
	if err == nil {
		cache.InvalidateGalleries(ctx)
	}
	return err
}
