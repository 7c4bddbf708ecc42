package repository

import (
	"errors"
	"testing"

	"chronicle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByGoogleID(t *testing.T) {
	repo := NewUserRepository(testDB)

	t.Run("unknown subject returns nil without error", func(t *testing.T) {
		user, err := repo.GetByGoogleID(testCtx(), "never-seen")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("known subject resolves with author profile", func(t *testing.T) {
		created, profile := createTestAuthor(t)
		user, err := repo.GetByGoogleID(testCtx(), created.GoogleID)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, created.ID, user.ID)
		require.NotNil(t, user.AuthorProfile)
		assert.Equal(t, profile.ID, user.AuthorProfile.ID)
	})
}

func TestUserRepository_Create_DuplicateGoogleID(t *testing.T) {
	repo := NewUserRepository(testDB)
	existing := createTestUser(t)

	err := repo.Create(testCtx(), &models.User{
		GoogleID: existing.GoogleID,
		Email:    "other@example.com",
	})
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	repo := NewUserRepository(testDB)
	_, err := repo.GetByID(testCtx(), 99999999)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUserRepository_AuthorProfiles(t *testing.T) {
	repo := NewUserRepository(testDB)

	t.Run("user without profile resolves to nil", func(t *testing.T) {
		user := createTestUser(t)
		profile, err := repo.GetAuthorProfile(testCtx(), user.ID)
		require.NoError(t, err)
		assert.Nil(t, profile)
	})

	t.Run("create and fetch", func(t *testing.T) {
		user := createTestUser(t)
		err := repo.CreateAuthorProfile(testCtx(), &models.AuthorProfile{
			UserID:  user.ID,
			PenName: "The Scribe",
			Bio:     "writes things",
		})
		require.NoError(t, err)

		profile, err := repo.GetAuthorProfile(testCtx(), user.ID)
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, "The Scribe", profile.PenName)

		byID, err := repo.GetAuthorProfileByID(testCtx(), profile.ID)
		require.NoError(t, err)
		assert.Equal(t, profile.UserID, byID.UserID)
	})

	t.Run("second profile for the same user rejected", func(t *testing.T) {
		_, profile := createTestAuthor(t)
		err := repo.CreateAuthorProfile(testCtx(), &models.AuthorProfile{
			UserID:  profile.UserID,
			PenName: "Impostor",
		})
		require.Error(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository(testDB)
	user := createTestUser(t)

	user.Name = "Renamed"
	user.Picture = "https://lh3.example/new"
	require.NoError(t, repo.Update(testCtx(), user))

	got, err := repo.GetByID(testCtx(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "https://lh3.example/new", got.Picture)
}
