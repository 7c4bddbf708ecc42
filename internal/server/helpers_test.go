package server

import (
	"errors"
	"net/http/httptest"
	"testing"

	"chronicle/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeParam(t *testing.T) {
	t.Parallel()
	tests := []struct {
		param string
		want  string
	}{
		{"id", "ID"},
		{"postId", "post ID"},
		{"galleryId", "gallery ID"},
		{"recentCount", "recentCount"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, humanizeParam(tt.param), "param %q", tt.param)
	}
}

func TestSplitCamel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"post"}, splitCamel("post"))
	assert.Equal(t, []string{"gallery", "Image"}, splitCamel("galleryImage"))
	assert.Equal(t, []string{""}, splitCamel(""))
}

func TestStatusForError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", models.NewUnauthenticatedError("no"), fiber.StatusUnauthorized},
		{"forbidden", models.NewForbiddenError("no"), fiber.StatusForbidden},
		{"not found", models.NewNotFoundError("post", 42), fiber.StatusNotFound},
		{"validation", models.NewValidationError("bad"), fiber.StatusBadRequest},
		{"upstream", models.NewUpstreamError("identity provider unreachable", errors.New("down")), fiber.StatusBadGateway},
		{"upload", models.NewUploadFailedError(errors.New("blob down")), fiber.StatusBadGateway},
		{"update failed", models.NewUpdateFailedError("post", errors.New("stale")), fiber.StatusInternalServerError},
		{"internal", models.NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"plain error", errors.New("opaque"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}

func TestParsePagination(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	var got Pagination
	app.Get("/page", func(c *fiber.Ctx) error {
		got = parsePagination(c, 20)
		return c.SendStatus(fiber.StatusOK)
	})

	request := func(t *testing.T, query string) Pagination {
		t.Helper()
		resp, err := app.Test(httptest.NewRequest("GET", "/page"+query, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		return got
	}

	assert.Equal(t, Pagination{Limit: 20, Offset: 0}, request(t, ""))
	assert.Equal(t, Pagination{Limit: 5, Offset: 10}, request(t, "?limit=5&offset=10"))
	assert.Equal(t, Pagination{Limit: 100, Offset: 0}, request(t, "?limit=5000"))
	assert.Equal(t, Pagination{Limit: 20, Offset: 0}, request(t, "?limit=-3&offset=-9"))
	assert.Equal(t, Pagination{Limit: 20, Offset: 0}, request(t, "?limit=abc"))
}
