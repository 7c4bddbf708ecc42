package repository

import (
	"errors"
	"testing"

	"chronicle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateAndGet(t *testing.T) {
	repo := NewCommentRepository(testDB)
	_, profile := createTestAuthor(t)
	reader := createTestUser(t)
	post := createTestPost(t, profile.ID)

	comment := &models.Comment{
		Content: "well said",
		UserID:  reader.ID,
		PostID:  post.ID,
	}
	require.NoError(t, repo.Create(testCtx(), comment))
	require.NotZero(t, comment.ID)

	got, err := repo.GetByID(testCtx(), comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "well said", got.Content)
	assert.Equal(t, reader.ID, got.User.ID)
}

func TestCommentRepository_GetByID_NotFound(t *testing.T) {
	repo := NewCommentRepository(testDB)
	_, err := repo.GetByID(testCtx(), 99999999)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestCommentRepository_ListByPost(t *testing.T) {
	repo := NewCommentRepository(testDB)
	_, profile := createTestAuthor(t)
	reader := createTestUser(t)
	post := createTestPost(t, profile.ID)
	other := createTestPost(t, profile.ID)

	require.NoError(t, repo.Create(testCtx(), &models.Comment{Content: "a", UserID: reader.ID, PostID: post.ID}))
	require.NoError(t, repo.Create(testCtx(), &models.Comment{Content: "b", UserID: reader.ID, PostID: post.ID}))
	require.NoError(t, repo.Create(testCtx(), &models.Comment{Content: "elsewhere", UserID: reader.ID, PostID: other.ID}))

	comments, err := repo.ListByPost(testCtx(), post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	for _, c := range comments {
		assert.Equal(t, post.ID, c.PostID)
	}
}

func TestCommentRepository_UpdateAndDelete(t *testing.T) {
	repo := NewCommentRepository(testDB)
	_, profile := createTestAuthor(t)
	reader := createTestUser(t)
	post := createTestPost(t, profile.ID)

	comment := &models.Comment{Content: "draft", UserID: reader.ID, PostID: post.ID}
	require.NoError(t, repo.Create(testCtx(), comment))

	comment.Content = "final"
	require.NoError(t, repo.Update(testCtx(), comment))
	got, err := repo.GetByID(testCtx(), comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Content)

	require.NoError(t, repo.Delete(testCtx(), comment.ID))
	_, err = repo.GetByID(testCtx(), comment.ID)
	require.Error(t, err)

	t.Run("deleted comments drop out of the post's counter", func(t *testing.T) {
		postRepo := NewPostRepository(testDB)
		detail, err := postRepo.GetByID(testCtx(), post.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, detail.CommentsCount)
	})
}

func TestCommentRepository_Delete_NotFound(t *testing.T) {
	repo := NewCommentRepository(testDB)
	err := repo.Delete(testCtx(), 99999999)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
