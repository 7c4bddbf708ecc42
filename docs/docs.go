// Package docs holds the generated Swagger specification served at
// /api/swagger. Regenerate with `swag init -g cmd/server/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://swagger.io/terms/",
        "contact": {
            "name": "API Support",
            "email": "support@chronicle.dev"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/user/userLogin": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["user"],
                "summary": "Find or create the local user for a verified Google identity",
                "responses": {
                    "200": {"description": "existing user"},
                    "201": {"description": "user created"},
                    "401": {"description": "credential rejected"}
                }
            }
        },
        "/user/userDetails": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["user"],
                "summary": "Local user record for the caller",
                "responses": {
                    "200": {"description": "user"},
                    "404": {"description": "no local account yet"}
                }
            }
        },
        "/user/makeAuthor": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["user"],
                "summary": "Create the caller's author profile",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"penName": {"type": "string"}, "bio": {"type": "string"}}}}
                ],
                "responses": {
                    "200": {"description": "author profile (existing profile returned unchanged)"},
                    "400": {"description": "validation error"}
                }
            }
        },
        "/user/isAuthor": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["user"],
                "summary": "Whether the caller holds an author profile",
                "responses": {"200": {"description": "{\"isAuthor\": bool}"}}
            }
        },
        "/user/myBlogs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["user"],
                "summary": "Posts authored by the caller",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "posts (empty for non-authors)"}}
            }
        },
        "/user/myLikedPosts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["user"],
                "summary": "Posts the caller has liked",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "posts"}}
            }
        },
        "/post/getHomePosts": {
            "get": {
                "tags": ["post"],
                "summary": "Home feed summary projection",
                "parameters": [
                    {"name": "sort", "in": "query", "type": "string", "description": "recent (default) or ranked"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "posts"}}
            }
        },
        "/post/getPost/{postId}": {
            "get": {
                "tags": ["post"],
                "summary": "Post detail with comments and author",
                "parameters": [
                    {"name": "postId", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "post"},
                    "404": {"description": "not found"}
                }
            }
        },
        "/post/getRecentNews/{recentCount}": {
            "get": {
                "tags": ["post"],
                "summary": "Latest news posts, newest first",
                "parameters": [
                    {"name": "recentCount", "in": "path", "type": "integer", "required": true, "description": "capped at 50"}
                ],
                "responses": {"200": {"description": "news posts"}}
            }
        },
        "/post/getCategory/{category}": {
            "get": {
                "tags": ["post"],
                "summary": "Posts tagged with a category",
                "parameters": [
                    {"name": "category", "in": "path", "type": "string", "required": true},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "posts"}}
            }
        },
        "/post/allArticles": {
            "get": {
                "tags": ["post"],
                "summary": "Article posts, newest first",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "articles"}}
            }
        },
        "/post/trending": {
            "get": {
                "tags": ["post"],
                "summary": "Posts curated as trending",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "trending posts"}}
            }
        },
        "/post/trending/{postId}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["post"],
                "summary": "Mark one of the caller's posts as trending",
                "parameters": [
                    {"name": "postId", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "{postId, trending}"},
                    "403": {"description": "not the post's author"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["post"],
                "summary": "Remove one of the caller's posts from trending",
                "parameters": [
                    {"name": "postId", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "{postId, trending}"},
                    "403": {"description": "not the post's author"}
                }
            }
        },
        "/post/createPost/{type}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["post"],
                "summary": "Create an article or news post (author-only)",
                "description": "Accepts a JSON body with pre-uploaded image URLs, or a multipart form with a 'data' JSON field, a 'frontImage' file part and one file part per IMAGE content placeholder.",
                "parameters": [
                    {"name": "type", "in": "path", "type": "string", "required": true, "description": "article or news"}
                ],
                "responses": {
                    "201": {"description": "created post"},
                    "400": {"description": "validation error"},
                    "403": {"description": "not an author"}
                }
            }
        },
        "/post/updatePost": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["post"],
                "summary": "Update one of the caller's posts",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"postId": {"type": "integer"}, "title": {"type": "string"}, "headline": {"type": "string"}, "frontImage": {"type": "string"}, "categories": {"type": "array", "items": {"type": "string"}}}}}
                ],
                "responses": {
                    "200": {"description": "updated post"},
                    "403": {"description": "not the post's author"},
                    "404": {"description": "post not found"}
                }
            }
        },
        "/post/deletePost": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["post"],
                "summary": "Soft-delete one of the caller's posts",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"postId": {"type": "integer"}}}}
                ],
                "responses": {
                    "204": {"description": "deleted"},
                    "403": {"description": "not the post's author"}
                }
            }
        },
        "/post/likePost": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["engagement"],
                "summary": "Toggle the caller's like on a post",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"postId": {"type": "integer"}}}}
                ],
                "responses": {
                    "200": {"description": "Liked or Unliked plus the refreshed post"},
                    "404": {"description": "user or post not found"}
                }
            }
        },
        "/post/likeGallery": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["engagement"],
                "summary": "Toggle the caller's like on a gallery",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"galleryId": {"type": "integer"}}}}
                ],
                "responses": {
                    "200": {"description": "Liked or Unliked plus the refreshed gallery"},
                    "404": {"description": "user or gallery not found"}
                }
            }
        },
        "/post/comment": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["comment"],
                "summary": "Comment on a post",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"postId": {"type": "integer"}, "comment": {"type": "string"}}}}
                ],
                "responses": {
                    "201": {"description": "created comment"},
                    "400": {"description": "validation error"},
                    "404": {"description": "post not found"}
                }
            }
        },
        "/post/editComment": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["comment"],
                "summary": "Edit one of the caller's comments",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"commentId": {"type": "integer"}, "comment": {"type": "string"}}}}
                ],
                "responses": {
                    "200": {"description": "updated comment"},
                    "403": {"description": "not the comment's author"}
                }
            }
        },
        "/post/deleteComment": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["comment"],
                "summary": "Delete one of the caller's comments",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"commentId": {"type": "integer"}}}}
                ],
                "responses": {
                    "204": {"description": "deleted"},
                    "403": {"description": "not the comment's author"}
                }
            }
        },
        "/post/getAllGalleries": {
            "get": {
                "tags": ["gallery"],
                "summary": "List galleries",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "galleries"}}
            }
        },
        "/post/creategallery": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["gallery"],
                "summary": "Create a gallery (author-only)",
                "description": "Multipart form: a 'data' JSON field {title, description, captions{}} plus one file part per image, ingested in field-name order.",
                "responses": {
                    "201": {"description": "created gallery"},
                    "400": {"description": "validation error or non-multipart body"},
                    "403": {"description": "not an author"}
                }
            }
        },
        "/post/galleries/{galleryId}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["gallery"],
                "summary": "Delete one of the caller's galleries",
                "parameters": [
                    {"name": "galleryId", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "204": {"description": "deleted"},
                    "403": {"description": "not the gallery's author"}
                }
            }
        },
        "/post/galleries/{galleryId}/image": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["gallery"],
                "summary": "Remove a single image from one of the caller's galleries",
                "parameters": [
                    {"name": "galleryId", "in": "path", "type": "integer", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"imageId": {"type": "integer"}}}}
                ],
                "responses": {
                    "204": {"description": "deleted"},
                    "404": {"description": "image not in this gallery"}
                }
            }
        },
        "/ws": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["realtime"],
                "summary": "Websocket stream of post/comment/engagement events",
                "description": "Upgrades to a websocket. The credential may also be supplied via the 'token' query parameter for browser clients.",
                "responses": {
                    "101": {"description": "switching protocols"},
                    "401": {"description": "credential rejected"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type \"Bearer\" followed by a space and a Google credential."
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8375",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Chronicle API",
	Description:      "Blogging platform API with articles, galleries, likes and comments",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
