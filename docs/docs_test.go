package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSpecCoversAPIRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var spec struct {
		BasePath string                            `json:"basePath"`
		Paths    map[string]map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &spec))
	assert.Equal(t, "/api", spec.BasePath)

	// One entry per route the server mounts under /api.
	want := map[string][]string{
		"/user/userLogin":                  {"get"},
		"/user/userDetails":                {"get"},
		"/user/makeAuthor":                 {"post"},
		"/user/isAuthor":                   {"get"},
		"/user/myBlogs":                    {"get"},
		"/user/myLikedPosts":               {"get"},
		"/post/getHomePosts":               {"get"},
		"/post/getPost/{postId}":           {"get"},
		"/post/getRecentNews/{recentCount}": {"get"},
		"/post/getCategory/{category}":     {"get"},
		"/post/allArticles":                {"get"},
		"/post/trending":                   {"get"},
		"/post/trending/{postId}":          {"post", "delete"},
		"/post/createPost/{type}":          {"post"},
		"/post/updatePost":                 {"post"},
		"/post/deletePost":                 {"post"},
		"/post/likePost":                   {"post"},
		"/post/likeGallery":                {"post"},
		"/post/comment":                    {"post"},
		"/post/editComment":                {"post"},
		"/post/deleteComment":              {"post"},
		"/post/getAllGalleries":            {"get"},
		"/post/creategallery":              {"post"},
		"/post/galleries/{galleryId}":      {"delete"},
		"/post/galleries/{galleryId}/image": {"delete"},
		"/ws":                              {"get"},
	}

	for path, methods := range want {
		entry, ok := spec.Paths[path]
		if !assert.True(t, ok, "path %s missing from spec", path) {
			continue
		}
		for _, method := range methods {
			assert.Contains(t, entry, method, "path %s missing method %s", path, method)
		}
	}
}
