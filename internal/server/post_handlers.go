package server

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"chronicle/internal/media"
	"chronicle/internal/models"
	"chronicle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postFields is the JSON shape shared by the create and update bodies. On
// multipart requests it arrives as the "data" form field.
type postFields struct {
	Title      string                  `json:"title"`
	Headline   string                  `json:"headline"`
	FrontImage string                  `json:"frontImage,omitempty"`
	Categories []string                `json:"categories"`
	Content    []models.ContentSegment `json:"content"`
}

// readFilePart buffers one uploaded file part for the media pipeline.
func readFilePart(fh *multipart.FileHeader) (media.UploadInput, error) {
	f, err := fh.Open()
	if err != nil {
		return media.UploadInput{}, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return media.UploadInput{}, err
	}

	return media.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

// CreatePost handles POST /api/post/createPost/:type
// Accepts either a JSON body (pre-uploaded image URLs) or a multipart form
// with a "data" JSON field, a "frontImage" file part, and one file part per
// IMAGE segment placeholder.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.requireUser(c)
	if err != nil {
		return nil
	}
	kind := c.Params("type")

	in := service.CreatePostInput{
		UserID: userID,
		Kind:   kind,
	}

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, formErr := c.MultipartForm()
		if formErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid multipart form"))
		}

		var fields postFields
		if data := form.Value["data"]; len(data) > 0 {
			if err := json.Unmarshal([]byte(data[0]), &fields); err != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError("Invalid data field"))
			}
		}
		in.Title = fields.Title
		in.Headline = fields.Headline
		in.FrontImageURL = fields.FrontImage
		in.Categories = fields.Categories
		in.Content = fields.Content

		in.Images = make(map[string]media.UploadInput)
		for name, headers := range form.File {
			if len(headers) == 0 {
				continue
			}
			upload, readErr := readFilePart(headers[0])
			if readErr != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError("Unreadable file part: "+name))
			}
			if name == "frontImage" {
				front := upload
				in.FrontImage = &front
				continue
			}
			in.Images[name] = upload
		}
	} else {
		var fields postFields
		if err := c.BodyParser(&fields); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
		in.Title = fields.Title
		in.Headline = fields.Headline
		in.FrontImageURL = fields.FrontImage
		in.Categories = fields.Categories
		in.Content = fields.Content
	}

	post, err := s.postService.CreatePost(ctx, in)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishBroadcastEvent(EventPostCreated, map[string]interface{}{
		"post_id":    post.ID,
		"kind":       post.Kind,
		"title":      post.Title,
		"author_id":  post.AuthorID,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles POST /api/post/updatePost
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		PostID uint `json:"postId"`
		postFields
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
	}

	post, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		UserID:     userID,
		PostID:     req.PostID,
		Title:      req.Title,
		Headline:   req.Headline,
		FrontImage: req.FrontImage,
		Categories: req.Categories,
		Content:    req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles POST /api/post/deletePost
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		PostID uint `json:"postId"`
	}
	if err := c.BodyParser(&req); err != nil || req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
	}

	if err := s.postService.DeletePost(ctx, service.DeletePostInput{
		UserID: userID,
		PostID: req.PostID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetHomePosts handles GET /api/post/getHomePosts?sort=ranked
func (s *Server) GetHomePosts(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)
	userID, _ := s.optionalUserID(c)

	posts, err := s.postService.GetHomePosts(ctx, service.ListPostsInput{
		Limit:         page.Limit,
		Offset:        page.Offset,
		CurrentUserID: userID,
		Sort:          c.Query("sort"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/post/getPost/:postId
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	post, err := s.postService.GetPost(ctx, postID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// GetRecentNews handles GET /api/post/getRecentNews/:recentCount
func (s *Server) GetRecentNews(c *fiber.Ctx) error {
	ctx := c.Context()
	count, err := c.ParamsInt("recentCount")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid recent count"))
	}
	userID, _ := s.optionalUserID(c)

	posts, err := s.postService.GetRecentNews(ctx, count, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// GetCategory handles GET /api/post/getCategory/:category
func (s *Server) GetCategory(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)
	userID, _ := s.optionalUserID(c)

	posts, err := s.postService.GetCategory(ctx, c.Params("category"), page.Limit, page.Offset, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// AllArticles handles GET /api/post/allArticles
func (s *Server) AllArticles(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)
	userID, _ := s.optionalUserID(c)

	posts, err := s.postService.AllArticles(ctx, page.Limit, page.Offset, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// GetTrending handles GET /api/post/trending
func (s *Server) GetTrending(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)
	userID, _ := s.optionalUserID(c)

	posts, err := s.postService.GetTrending(ctx, page.Limit, page.Offset, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// AddTrending handles POST /api/post/trending/:postId
func (s *Server) AddTrending(c *fiber.Ctx) error {
	return s.setTrending(c, true)
}

// RemoveTrending handles DELETE /api/post/trending/:postId
func (s *Server) RemoveTrending(c *fiber.Ctx) error {
	return s.setTrending(c, false)
}

func (s *Server) setTrending(c *fiber.Ctx, trending bool) error {
	ctx := c.Context()
	userID, err := s.requireUser(c)
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.postService.SetTrending(ctx, userID, postID, trending); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"postId": postID, "trending": trending})
}

// LikePost handles POST /api/post/likePost
// Toggles the caller's like on a post.
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		PostID uint `json:"postId"`
	}
	if err := c.BodyParser(&req); err != nil || req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
	}

	post, liked, err := s.engagementService.TogglePostLike(ctx, userID, req.PostID)
	if err != nil {
		return respondServiceError(c, err)
	}

	message := "Unliked"
	if liked {
		message = "Liked"
	}

	s.publishBroadcastEvent(EventEngagementUpdated, map[string]interface{}{
		"target":         "post",
		"post_id":        post.ID,
		"likes_count":    post.LikesCount,
		"comments_count": post.CommentsCount,
		"updated_at":     time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(fiber.Map{
		"message": message,
		"post":    post,
	})
}
