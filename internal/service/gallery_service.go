package service

import (
	"context"
	"strings"

	"chronicle/internal/cache"
	"chronicle/internal/media"
	"chronicle/internal/models"
	"chronicle/internal/repository"
)

type GalleryService struct {
	galleryRepo repository.GalleryRepository
	userRepo    repository.UserRepository
	uploader    media.Uploader
}

// GalleryImageInput is one image plus its caption for a new gallery.
type GalleryImageInput struct {
	Upload  media.UploadInput
	Caption string
}

type CreateGalleryInput struct {
	UserID      uint
	Title       string
	Description string
	Images      []GalleryImageInput
}

func NewGalleryService(
	galleryRepo repository.GalleryRepository,
	userRepo repository.UserRepository,
	uploader media.Uploader,
) *GalleryService {
	return &GalleryService{
		galleryRepo: galleryRepo,
		userRepo:    userRepo,
		uploader:    uploader,
	}
}

func (s *GalleryService) requireAuthorProfile(ctx context.Context, userID uint) (*models.AuthorProfile, error) {
	profile, err := s.userRepo.GetAuthorProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewForbiddenError("Only authors can perform this action")
	}
	return profile, nil
}

func (s *GalleryService) requireOwnership(ctx context.Context, userID, galleryID uint) (*models.Gallery, error) {
	profile, err := s.requireAuthorProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	gallery, err := s.galleryRepo.GetByID(ctx, galleryID, userID)
	if err != nil {
		return nil, err
	}
	if gallery.AuthorID != profile.ID {
		return nil, models.NewForbiddenError("You can only modify your own galleries")
	}
	return gallery, nil
}

func (s *GalleryService) CreateGallery(ctx context.Context, in CreateGalleryInput) (*models.Gallery, error) {
	profile, err := s.requireAuthorProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(in.Images) == 0 {
		return nil, models.NewValidationError("A gallery needs at least one image")
	}
	if len(in.Images) > 50 {
		return nil, models.NewValidationError("Too many images (max 50)")
	}

	gallery := &models.Gallery{
		Title:       title,
		Description: in.Description,
		AuthorID:    profile.ID,
	}
	for _, img := range in.Images {
		result, err := s.uploader.Upload(ctx, img.Upload)
		if err != nil {
			return nil, err
		}
		gallery.Images = append(gallery.Images, models.GalleryImage{
			URL:     result.URL,
			Caption: img.Caption,
		})
	}

	if err := s.galleryRepo.Create(ctx, gallery); err != nil {
		return nil, err
	}
	return s.galleryRepo.GetByID(ctx, gallery.ID, in.UserID)
}

// ListGalleries serves the anonymous listing cache-aside.
func (s *GalleryService) ListGalleries(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Gallery, error) {
	var galleries []*models.Gallery
	if currentUserID == 0 && offset == 0 && limit <= 20 {
		err := cache.Aside(ctx, cache.GalleriesKey, &galleries, cache.GalleriesTTL, func() error {
			var fetchErr error
			galleries, fetchErr = s.galleryRepo.List(ctx, limit, offset, 0)
			return fetchErr
		})
		return galleries, err
	}
	return s.galleryRepo.List(ctx, limit, offset, currentUserID)
}

func (s *GalleryService) GetGallery(ctx context.Context, id uint, currentUserID uint) (*models.Gallery, error) {
	return s.galleryRepo.GetByID(ctx, id, currentUserID)
}

func (s *GalleryService) DeleteGallery(ctx context.Context, userID, galleryID uint) error {
	if _, err := s.requireOwnership(ctx, userID, galleryID); err != nil {
		return err
	}
	return s.galleryRepo.Delete(ctx, galleryID)
}

func (s *GalleryService) DeleteGalleryImage(ctx context.Context, userID, galleryID, imageID uint) error {
	if _, err := s.requireOwnership(ctx, userID, galleryID); err != nil {
		return err
	}
	return s.galleryRepo.DeleteImage(ctx, galleryID, imageID)
}
