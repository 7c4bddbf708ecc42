package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"chronicle/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeAuthor(t *testing.T) {
	ts := newTestServer(t)

	t.Run("creates the profile", func(t *testing.T) {
		_, token := seedUser(t, ts)
		body, _ := json.Marshal(fiber.Map{"penName": "Night Owl", "bio": "writes after dark"})
		req := bearer(httptest.NewRequest("POST", "/api/user/makeAuthor", bytes.NewReader(body)), token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var profile models.AuthorProfile
		require.NoError(t, json.Unmarshal(raw, &profile))
		assert.Equal(t, "Night Owl", profile.PenName)
		assert.NotZero(t, profile.ID)
	})

	t.Run("empty pen name rejected", func(t *testing.T) {
		_, token := seedUser(t, ts)
		body, _ := json.Marshal(fiber.Map{"penName": ""})
		req := bearer(httptest.NewRequest("POST", "/api/user/makeAuthor", bytes.NewReader(body)), token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, models.CodeValidation, decodeError(t, resp).Code)
	})

	t.Run("idempotent for existing authors", func(t *testing.T) {
		_, profile, token := seedAuthor(t, ts)
		body, _ := json.Marshal(fiber.Map{"penName": "Different Name"})
		req := bearer(httptest.NewRequest("POST", "/api/user/makeAuthor", bytes.NewReader(body)), token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var got models.AuthorProfile
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, profile.PenName, got.PenName)
	})
}

func TestIsAuthor(t *testing.T) {
	ts := newTestServer(t)

	check := func(t *testing.T, token string) bool {
		t.Helper()
		req := bearer(httptest.NewRequest("GET", "/api/user/isAuthor", nil), token)
		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var got struct {
			IsAuthor bool `json:"isAuthor"`
		}
		require.NoError(t, json.Unmarshal(raw, &got))
		return got.IsAuthor
	}

	t.Run("reader", func(t *testing.T) {
		_, token := seedUser(t, ts)
		assert.False(t, check(t, token))
	})

	t.Run("author", func(t *testing.T) {
		_, _, token := seedAuthor(t, ts)
		assert.True(t, check(t, token))
	})
}

func TestMyBlogs(t *testing.T) {
	ts := newTestServer(t)

	t.Run("reader has none", func(t *testing.T) {
		_, token := seedUser(t, ts)
		req := bearer(httptest.NewRequest("GET", "/api/user/myBlogs", nil), token)
		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var posts []models.Post
		require.NoError(t, json.Unmarshal(raw, &posts))
		assert.Empty(t, posts)
	})

	t.Run("author sees own posts only", func(t *testing.T) {
		_, profile, token := seedAuthor(t, ts)
		_, otherProfile, _ := seedAuthor(t, ts)
		mine := seedPost(t, profile.ID)
		seedPost(t, otherProfile.ID)

		req := bearer(httptest.NewRequest("GET", "/api/user/myBlogs", nil), token)
		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var posts []models.Post
		require.NoError(t, json.Unmarshal(raw, &posts))
		require.Len(t, posts, 1)
		assert.Equal(t, mine.ID, posts[0].ID)
	})
}

func TestMyLikedPosts(t *testing.T) {
	ts := newTestServer(t)
	user, token := seedUser(t, ts)
	_, profile, _ := seedAuthor(t, ts)

	liked := seedPost(t, profile.ID)
	seedPost(t, profile.ID)
	require.NoError(t, testDB.Create(&models.Like{UserID: user.ID, PostID: liked.ID}).Error)

	req := bearer(httptest.NewRequest("GET", "/api/user/myLikedPosts", nil), token)
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var posts []models.Post
	require.NoError(t, json.Unmarshal(raw, &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, liked.ID, posts[0].ID)
	assert.True(t, posts[0].Liked)
}
