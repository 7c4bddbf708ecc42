package repository

import (
	"errors"
	"testing"

	"chronicle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGalleryRepository_CreateAndGet(t *testing.T) {
	repo := NewGalleryRepository(testDB)
	_, profile := createTestAuthor(t)

	gallery := &models.Gallery{
		Title:       "City at night",
		Description: "long exposures",
		AuthorID:    profile.ID,
		Images: []models.GalleryImage{
			{URL: "https://blob.test/n1.jpg", Caption: "bridge"},
			{URL: "https://blob.test/n2.jpg"},
		},
	}
	require.NoError(t, repo.Create(testCtx(), gallery))
	require.NotZero(t, gallery.ID)

	got, err := repo.GetByID(testCtx(), gallery.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "City at night", got.Title)
	assert.Equal(t, profile.ID, got.Author.ID)
	require.Len(t, got.Images, 2)
	assert.Equal(t, "bridge", got.Images[0].Caption)
	assert.Equal(t, 0, got.LikesCount)
}

func TestGalleryRepository_GetByID_NotFound(t *testing.T) {
	repo := NewGalleryRepository(testDB)
	_, err := repo.GetByID(testCtx(), 99999999, 0)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestGalleryRepository_Likes(t *testing.T) {
	repo := NewGalleryRepository(testDB)
	_, profile := createTestAuthor(t)
	reader := createTestUser(t)
	gallery := createTestGallery(t, profile.ID, 1)

	t.Run("like is idempotent and counted", func(t *testing.T) {
		require.NoError(t, repo.Like(testCtx(), reader.ID, gallery.ID))
		require.NoError(t, repo.Like(testCtx(), reader.ID, gallery.ID))

		got, err := repo.GetByID(testCtx(), gallery.ID, reader.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.LikesCount)
		assert.True(t, got.Liked)
	})

	t.Run("other viewers do not inherit the flag", func(t *testing.T) {
		got, err := repo.GetByID(testCtx(), gallery.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, got.LikesCount)
		assert.False(t, got.Liked)
	})

	t.Run("unlike", func(t *testing.T) {
		require.NoError(t, repo.Unlike(testCtx(), reader.ID, gallery.ID))
		liked, err := repo.IsLiked(testCtx(), reader.ID, gallery.ID)
		require.NoError(t, err)
		assert.False(t, liked)
	})
}

func TestGalleryRepository_DeleteImage(t *testing.T) {
	repo := NewGalleryRepository(testDB)
	_, profile := createTestAuthor(t)
	gallery := createTestGallery(t, profile.ID, 2)
	foreign := createTestGallery(t, profile.ID, 1)

	t.Run("removes the image from its gallery", func(t *testing.T) {
		require.NoError(t, repo.DeleteImage(testCtx(), gallery.ID, gallery.Images[0].ID))
		got, err := repo.GetByID(testCtx(), gallery.ID, 0)
		require.NoError(t, err)
		require.Len(t, got.Images, 1)
		assert.Equal(t, gallery.Images[1].ID, got.Images[0].ID)
	})

	t.Run("image of another gallery is out of scope", func(t *testing.T) {
		err := repo.DeleteImage(testCtx(), gallery.ID, foreign.Images[0].ID)
		require.Error(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeNotFound, appErr.Code)

		// The foreign image survives.
		got, err := repo.GetByID(testCtx(), foreign.ID, 0)
		require.NoError(t, err)
		assert.Len(t, got.Images, 1)
	})
}

func TestGalleryRepository_Delete_RemovesImages(t *testing.T) {
	repo := NewGalleryRepository(testDB)
	_, profile := createTestAuthor(t)
	gallery := createTestGallery(t, profile.ID, 3)

	require.NoError(t, repo.Delete(testCtx(), gallery.ID))

	_, err := repo.GetByID(testCtx(), gallery.ID, 0)
	require.Error(t, err)

	var count int64
	require.NoError(t, testDB.Model(&models.GalleryImage{}).Where("gallery_id = ?", gallery.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGalleryRepository_List(t *testing.T) {
	repo := NewGalleryRepository(testDB)
	_, profile := createTestAuthor(t)
	gallery := createTestGallery(t, profile.ID, 1)

	galleries, err := repo.List(testCtx(), 1000, 0, 0)
	require.NoError(t, err)
	found := false
	for _, g := range galleries {
		if g.ID == gallery.ID {
			found = true
			assert.Len(t, g.Images, 1)
		}
	}
	assert.True(t, found)
}
