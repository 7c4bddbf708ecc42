package server

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"chronicle/internal/models"
	"chronicle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllGalleries handles GET /api/post/getAllGalleries
func (s *Server) GetAllGalleries(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)
	userID, _ := s.optionalUserID(c)

	galleries, err := s.galleryService.ListGalleries(ctx, page.Limit, page.Offset, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(galleries)
}

// CreateGallery handles POST /api/post/creategallery
// Multipart form: a "data" JSON field {title, description, captions{}} plus
// one file part per image. Parts are ingested in field-name order so the
// gallery keeps the order the client chose.
func (s *Server) CreateGallery(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Multipart form required"))
	}

	form, formErr := c.MultipartForm()
	if formErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid multipart form"))
	}

	var fields struct {
		Title       string            `json:"title"`
		Description string            `json:"description"`
		Captions    map[string]string `json:"captions"`
	}
	if data := form.Value["data"]; len(data) > 0 {
		if err := json.Unmarshal([]byte(data[0]), &fields); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid data field"))
		}
	}

	names := make([]string, 0, len(form.File))
	for name := range form.File {
		names = append(names, name)
	}
	sort.Strings(names)

	var images []service.GalleryImageInput
	for _, name := range names {
		headers := form.File[name]
		if len(headers) == 0 {
			continue
		}
		upload, readErr := readFilePart(headers[0])
		if readErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unreadable file part: "+name))
		}
		images = append(images, service.GalleryImageInput{
			Upload:  upload,
			Caption: fields.Captions[name],
		})
	}

	gallery, err := s.galleryService.CreateGallery(ctx, service.CreateGalleryInput{
		UserID:      userID,
		Title:       fields.Title,
		Description: fields.Description,
		Images:      images,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishBroadcastEvent(EventGalleryCreated, map[string]interface{}{
		"gallery_id": gallery.ID,
		"title":      gallery.Title,
		"author_id":  gallery.AuthorID,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(gallery)
}

// LikeGallery handles POST /api/post/likeGallery
// Toggles the caller's like on a gallery.
func (s *Server) LikeGallery(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		GalleryID uint `json:"galleryId"`
	}
	if err := c.BodyParser(&req); err != nil || req.GalleryID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid gallery ID"))
	}

	gallery, liked, err := s.engagementService.ToggleGalleryLike(ctx, userID, req.GalleryID)
	if err != nil {
		return respondServiceError(c, err)
	}

	message := "Unliked"
	if liked {
		message = "Liked"
	}

	s.publishBroadcastEvent(EventEngagementUpdated, map[string]interface{}{
		"target":      "gallery",
		"gallery_id":  gallery.ID,
		"likes_count": gallery.LikesCount,
		"updated_at":  time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(fiber.Map{
		"message": message,
		"gallery": gallery,
	})
}

// DeleteGallery handles DELETE /api/post/galleries/:galleryId
func (s *Server) DeleteGallery(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.requireUser(c)
	if err != nil {
		return nil
	}
	galleryID, err := s.parseID(c, "galleryId")
	if err != nil {
		return nil
	}

	if err := s.galleryService.DeleteGallery(ctx, userID, galleryID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteGalleryImage handles DELETE /api/post/galleries/:galleryId/image
func (s *Server) DeleteGalleryImage(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.requireUser(c)
	if err != nil {
		return nil
	}
	galleryID, err := s.parseID(c, "galleryId")
	if err != nil {
		return nil
	}

	var req struct {
		ImageID uint `json:"imageId"`
	}
	if err := c.BodyParser(&req); err != nil || req.ImageID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid image ID"))
	}

	if err := s.galleryService.DeleteGalleryImage(ctx, userID, galleryID, req.ImageID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
