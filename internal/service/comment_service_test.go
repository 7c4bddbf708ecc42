package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"chronicle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id, UserID: 1}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

func TestCommentService_CreateComment_Validation(t *testing.T) {
	t.Parallel()

	svc := NewCommentService(noopCommentRepo(), noopPostRepo())
	ctx := context.Background()

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 1, Content: "   "})
		assertValidationError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID:  1,
			PostID:  1,
			Content: strings.Repeat("x", 10001),
		})
		assertValidationError(t, err)
	})

	t.Run("missing post propagates repo error", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		svc2 := NewCommentService(noopCommentRepo(), postRepo)
		_, err := svc2.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 99, Content: "hi"})
		assertNotFoundError(t, err)
	})
}

func TestCommentService_CreateComment_Success(t *testing.T) {
	t.Parallel()

	commentRepo := noopCommentRepo()
	commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 42
		return nil
	}
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, Content: "hello", UserID: 1, PostID: 1, User: models.User{ID: 1}}, nil
	}

	svc := NewCommentService(commentRepo, noopPostRepo())
	comment, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID:  1,
		PostID:  1,
		Content: "  hello  ",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), comment.ID)
	assert.Equal(t, "hello", comment.Content)
}

func TestCommentService_UpdateComment(t *testing.T) {
	t.Parallel()

	t.Run("non-owner cannot edit", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, UserID: 10}, nil
		}
		commentRepo.updateFn = func(_ context.Context, _ *models.Comment) error {
			t.Fatal("update must not run on a failed ownership check")
			return nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, CommentID: 1, Content: "new"})
		assertForbiddenError(t, err)
	})

	t.Run("owner edits and content is trimmed", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		var updated *models.Comment
		commentRepo.updateFn = func(_ context.Context, c *models.Comment) error {
			updated = c
			return nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		comment, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, CommentID: 1, Content: " edited "})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "edited", comment.Content)
	})

	t.Run("write failure surfaces as update failed", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.updateFn = func(_ context.Context, _ *models.Comment) error {
			return errors.New("db down")
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, CommentID: 1, Content: "x"})
		require.Error(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeUpdateFailed, appErr.Code)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	t.Parallel()

	t.Run("non-owner cannot delete", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, UserID: 7}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, CommentID: 1})
		assertForbiddenError(t, err)
	})

	t.Run("owner deletes", func(t *testing.T) {
		t.Parallel()
		var deleted uint
		commentRepo := noopCommentRepo()
		commentRepo.deleteFn = func(_ context.Context, id uint) error {
			deleted = id
			return nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		require.NoError(t, svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, CommentID: 6}))
		assert.Equal(t, uint(6), deleted)
	})
}
