package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"chronicle/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonPost(t *testing.T, target, token string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := bearer(httptest.NewRequest("POST", target, bytes.NewReader(body)), token)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodePost(t *testing.T, resp *http.Response) models.Post {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var post models.Post
	require.NoError(t, json.Unmarshal(raw, &post), "body: %s", raw)
	return post
}

func TestCreatePost(t *testing.T) {
	ts := newTestServer(t)

	t.Run("readers may not publish", func(t *testing.T) {
		_, token := seedUser(t, ts)
		req := jsonPost(t, "/api/post/createPost/article", token, fiber.Map{"title": "Nope"})
		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.Equal(t, models.CodeForbidden, decodeError(t, resp).Code)
	})

	t.Run("json body with pre-uploaded images", func(t *testing.T) {
		_, _, token := seedAuthor(t, ts)
		req := jsonPost(t, "/api/post/createPost/article", token, fiber.Map{
			"title":      "Launch Week",
			"headline":   "Everything we shipped",
			"frontImage": "https://cdn.test/front.jpg",
			"categories": []string{"tech", "Tech", "culture"},
			"content": []fiber.Map{
				{"type": models.SegmentParagraph, "body": "It was a busy week."},
				{"type": models.SegmentImage, "body": "https://cdn.test/inline.jpg"},
			},
		})
		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		post := decodePost(t, resp)
		assert.Equal(t, "Launch Week", post.Title)
		assert.Equal(t, models.PostKindArticle, post.Kind)
		assert.Equal(t, "https://cdn.test/front.jpg", post.FrontImage)
		assert.Len(t, post.Categories, 2)
	})

	t.Run("multipart body uploads file parts", func(t *testing.T) {
		_, _, token := seedAuthor(t, ts)

		data, err := json.Marshal(fiber.Map{
			"title": "Photo Essay",
			"content": []fiber.Map{
				{"type": models.SegmentParagraph, "body": "Shot on film."},
				{"type": models.SegmentImage, "body": "image-0"},
			},
		})
		require.NoError(t, err)

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.WriteField("data", string(data)))
		front, err := mw.CreateFormFile("frontImage", "front.png")
		require.NoError(t, err)
		_, err = front.Write([]byte("front-bytes"))
		require.NoError(t, err)
		inline, err := mw.CreateFormFile("image-0", "inline.png")
		require.NoError(t, err)
		_, err = inline.Write([]byte("inline-bytes"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := bearer(httptest.NewRequest("POST", "/api/post/createPost/news", &body), token)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		post := decodePost(t, resp)
		assert.Equal(t, models.PostKindNews, post.Kind)
		assert.Equal(t, "https://cdn.test/front.png", post.FrontImage)
		require.Len(t, post.Content, 2)
		assert.Equal(t, "https://cdn.test/inline.png", post.Content[1].Body)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		_, _, token := seedAuthor(t, ts)
		req := jsonPost(t, "/api/post/createPost/podcast", token, fiber.Map{"title": "Audio"})
		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetPost(t *testing.T) {
	ts := newTestServer(t)
	_, profile, _ := seedAuthor(t, ts)
	post := seedPost(t, profile.ID)

	t.Run("found", func(t *testing.T) {
		resp, err := ts.app.Test(httptest.NewRequest("GET", fmt.Sprintf("/api/post/getPost/%d", post.ID), nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		got := decodePost(t, resp)
		assert.Equal(t, post.ID, got.ID)
		assert.Equal(t, post.Title, got.Title)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, err := ts.app.Test(httptest.NewRequest("GET", "/api/post/getPost/abc", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid post ID", decodeError(t, resp).Error)
	})

	t.Run("missing", func(t *testing.T) {
		resp, err := ts.app.Test(httptest.NewRequest("GET", "/api/post/getPost/999999", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestGetHomePosts(t *testing.T) {
	ts := newTestServer(t)
	_, profile, _ := seedAuthor(t, ts)
	seedPost(t, profile.ID)

	resp, err := ts.app.Test(httptest.NewRequest("GET", "/api/post/getHomePosts?sort=ranked&limit=5", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var posts []models.Post
	require.NoError(t, json.Unmarshal(raw, &posts))
	assert.NotEmpty(t, posts)
	assert.LessOrEqual(t, len(posts), 5)
}

func TestUpdatePost(t *testing.T) {
	ts := newTestServer(t)
	_, profile, token := seedAuthor(t, ts)
	post := seedPost(t, profile.ID)

	t.Run("owner updates", func(t *testing.T) {
		req := jsonPost(t, "/api/post/updatePost", token, fiber.Map{
			"postId": post.ID,
			"title":  "Retitled",
		})
		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Retitled", decodePost(t, resp).Title)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		_, _, otherToken := seedAuthor(t, ts)
		req := jsonPost(t, "/api/post/updatePost", otherToken, fiber.Map{
			"postId": post.ID,
			"title":  "Hijacked",
		})
		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("zero post id", func(t *testing.T) {
		req := jsonPost(t, "/api/post/updatePost", token, fiber.Map{"title": "No ID"})
		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeletePost(t *testing.T) {
	ts := newTestServer(t)
	_, profile, token := seedAuthor(t, ts)
	post := seedPost(t, profile.ID)

	req := jsonPost(t, "/api/post/deletePost", token, fiber.Map{"postId": post.ID})
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = ts.app.Test(httptest.NewRequest("GET", fmt.Sprintf("/api/post/getPost/%d", post.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLikePost(t *testing.T) {
	ts := newTestServer(t)
	_, token := seedUser(t, ts)
	_, profile, _ := seedAuthor(t, ts)
	post := seedPost(t, profile.ID)

	toggle := func(t *testing.T) (string, models.Post) {
		t.Helper()
		req := jsonPost(t, "/api/post/likePost", token, fiber.Map{"postId": post.ID})
		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var got struct {
			Message string      `json:"message"`
			Post    models.Post `json:"post"`
		}
		require.NoError(t, json.Unmarshal(raw, &got))
		return got.Message, got.Post
	}

	message, liked := toggle(t)
	assert.Equal(t, "Liked", message)
	assert.Equal(t, 1, liked.LikesCount)
	assert.True(t, liked.Liked)

	message, unliked := toggle(t)
	assert.Equal(t, "Unliked", message)
	assert.Equal(t, 0, unliked.LikesCount)
}

func TestTrending(t *testing.T) {
	ts := newTestServer(t)
	_, profile, token := seedAuthor(t, ts)
	post := seedPost(t, profile.ID)

	t.Run("mark", func(t *testing.T) {
		req := bearer(httptest.NewRequest("POST", fmt.Sprintf("/api/post/trending/%d", post.ID), nil), token)
		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var got struct {
			PostID   uint `json:"postId"`
			Trending bool `json:"trending"`
		}
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, post.ID, got.PostID)
		assert.True(t, got.Trending)
	})

	t.Run("listed", func(t *testing.T) {
		resp, err := ts.app.Test(httptest.NewRequest("GET", "/api/post/trending", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var posts []models.Post
		require.NoError(t, json.Unmarshal(raw, &posts))
		ids := make([]uint, 0, len(posts))
		for _, p := range posts {
			ids = append(ids, p.ID)
		}
		assert.Contains(t, ids, post.ID)
	})

	t.Run("unmark", func(t *testing.T) {
		req := bearer(httptest.NewRequest("DELETE", fmt.Sprintf("/api/post/trending/%d", post.ID), nil), token)
		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		_, _, otherToken := seedAuthor(t, ts)
		req := bearer(httptest.NewRequest("POST", fmt.Sprintf("/api/post/trending/%d", post.ID), nil), otherToken)
		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestGetRecentNews(t *testing.T) {
	ts := newTestServer(t)
	_, profile, _ := seedAuthor(t, ts)
	seedPost(t, profile.ID, func(p *models.Post) { p.Kind = models.PostKindNews })

	resp, err := ts.app.Test(httptest.NewRequest("GET", "/api/post/getRecentNews/5", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var posts []models.Post
	require.NoError(t, json.Unmarshal(raw, &posts))
	assert.NotEmpty(t, posts)
	for _, p := range posts {
		assert.Equal(t, models.PostKindNews, p.Kind)
	}
}
