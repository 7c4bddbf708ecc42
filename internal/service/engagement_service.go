package service

import (
	"context"

	"chronicle/internal/models"
	"chronicle/internal/observability"
	"chronicle/internal/repository"
)

// EngagementService owns the like toggles. The likes join tables are the
// single source of truth: the toggle performs exactly one row write, so there
// is no cross-record protocol to roll back.
type EngagementService struct {
	postRepo    repository.PostRepository
	galleryRepo repository.GalleryRepository
	userRepo    repository.UserRepository
}

func NewEngagementService(
	postRepo repository.PostRepository,
	galleryRepo repository.GalleryRepository,
	userRepo repository.UserRepository,
) *EngagementService {
	return &EngagementService{
		postRepo:    postRepo,
		galleryRepo: galleryRepo,
		userRepo:    userRepo,
	}
}

// TogglePostLike flips the caller's like on a post. Returns the refreshed
// post and whether the post is now liked.
func (s *EngagementService) TogglePostLike(ctx context.Context, userID, postID uint) (*models.Post, bool, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, false, err
	}
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return nil, false, err
	}

	isLiked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, false, models.NewUpdateFailedError("post like", err)
	}

	if isLiked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, false, models.NewUpdateFailedError("post like", err)
		}
		observability.EngagementToggles.WithLabelValues("post", "unlike").Inc()
	} else {
		if err := s.postRepo.Like(ctx, userID, postID); err != nil {
			return nil, false, models.NewUpdateFailedError("post like", err)
		}
		observability.EngagementToggles.WithLabelValues("post", "like").Inc()
	}

	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, false, err
	}
	return post, !isLiked, nil
}

// ToggleGalleryLike is the gallery counterpart of TogglePostLike.
func (s *EngagementService) ToggleGalleryLike(ctx context.Context, userID, galleryID uint) (*models.Gallery, bool, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, false, err
	}
	if _, err := s.galleryRepo.GetByID(ctx, galleryID, userID); err != nil {
		return nil, false, err
	}

	isLiked, err := s.galleryRepo.IsLiked(ctx, userID, galleryID)
	if err != nil {
		return nil, false, models.NewUpdateFailedError("gallery like", err)
	}

	if isLiked {
		if err := s.galleryRepo.Unlike(ctx, userID, galleryID); err != nil {
			return nil, false, models.NewUpdateFailedError("gallery like", err)
		}
		observability.EngagementToggles.WithLabelValues("gallery", "unlike").Inc()
	} else {
		if err := s.galleryRepo.Like(ctx, userID, galleryID); err != nil {
			return nil, false, models.NewUpdateFailedError("gallery like", err)
		}
		observability.EngagementToggles.WithLabelValues("gallery", "like").Inc()
	}

	gallery, err := s.galleryRepo.GetByID(ctx, galleryID, userID)
	if err != nil {
		return nil, false, err
	}
	return gallery, !isLiked, nil
}
