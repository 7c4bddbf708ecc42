package service

import (
	"context"
	"strings"

	"chronicle/internal/models"
	"chronicle/internal/repository"
)

const maxCommentLen = 10000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func validateCommentContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", models.NewValidationError("Comment content is required")
	}
	if len(trimmed) > maxCommentLen {
		return "", models.NewValidationError("Comment too long (max 10000 characters)")
	}
	return trimmed, nil
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	content, err := validateCommentContent(in.Content)
	if err != nil {
		return nil, err
	}

	// The target post must exist before a comment may attach to it.
	if _, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		UserID:  in.UserID,
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// UpdateComment edits a comment. Only the comment's owner may edit it; on a
// failed ownership check the record is left unmodified.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	content, err := validateCommentContent(in.Content)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, models.NewUpdateFailedError("comment", err)
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}
	if comment.UserID != in.UserID {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, in.CommentID)
}
