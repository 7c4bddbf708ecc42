// Package service implements business logic and authorization on top of the
// repository layer.
package service

import (
	"context"
	"strings"

	"chronicle/internal/models"
	"chronicle/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

// LoginInput carries verified provider claims into the lazy upsert.
type LoginInput struct {
	GoogleID      string
	Email         string
	EmailVerified bool
	Name          string
	GivenName     string
	Picture       string
}

type MakeAuthorInput struct {
	UserID  uint
	PenName string
	Bio     string
}

func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		postRepo: postRepo,
	}
}

// Login finds or creates the local user for a verified Google identity.
// Returns the user and whether a new record was created.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.User, bool, error) {
	if in.GoogleID == "" {
		return nil, false, models.NewUnauthenticatedError("Credential carries no subject")
	}
	if !in.EmailVerified {
		return nil, false, models.NewUnauthenticatedError("Email address is not verified")
	}

	user, err := s.userRepo.GetByGoogleID(ctx, in.GoogleID)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		// Backfill display attributes that changed on the provider side.
		if user.Email != in.Email || user.Name != in.Name || user.Picture != in.Picture {
			user.Email = in.Email
			user.Name = in.Name
			user.GivenName = in.GivenName
			user.Picture = in.Picture
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, false, err
			}
		}
		return user, false, nil
	}

	user = &models.User{
		GoogleID:      in.GoogleID,
		Email:         in.Email,
		EmailVerified: in.EmailVerified,
		Name:          in.Name,
		GivenName:     in.GivenName,
		Picture:       in.Picture,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Concurrent first logins race on the unique google_id; the loser
		// re-reads the winner's row.
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeValidation {
			existing, getErr := s.userRepo.GetByGoogleID(ctx, in.GoogleID)
			if getErr == nil && existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}
	return user, true, nil
}

func (s *UserService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// MakeAuthor creates the caller's author profile. Idempotent: an existing
// profile is returned unchanged.
func (s *UserService) MakeAuthor(ctx context.Context, in MakeAuthorInput) (*models.AuthorProfile, error) {
	penName := strings.TrimSpace(in.PenName)
	if penName == "" {
		return nil, models.NewValidationError("Pen name is required")
	}
	if len(penName) > 100 {
		return nil, models.NewValidationError("Pen name too long (max 100 characters)")
	}
	if len(in.Bio) > 2000 {
		return nil, models.NewValidationError("Bio too long (max 2000 characters)")
	}

	existing, err := s.userRepo.GetAuthorProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	profile := &models.AuthorProfile{
		UserID:  in.UserID,
		PenName: penName,
		Bio:     in.Bio,
	}
	if err := s.userRepo.CreateAuthorProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *UserService) IsAuthor(ctx context.Context, userID uint) (bool, error) {
	profile, err := s.userRepo.GetAuthorProfile(ctx, userID)
	if err != nil {
		return false, err
	}
	return profile != nil, nil
}

// MyBlogs lists the caller's own posts. A user without an author profile has
// none by definition.
func (s *UserService) MyBlogs(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	profile, err := s.userRepo.GetAuthorProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return []*models.Post{}, nil
	}
	return s.postRepo.ListByAuthor(ctx, profile.ID, limit, offset, userID)
}

// MyLikedPosts projects the caller's liked posts off the likes join table.
func (s *UserService) MyLikedPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.ListLikedByUser(ctx, userID, limit, offset)
}
