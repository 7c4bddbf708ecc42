package server

import (
	"time"

	"chronicle/internal/models"
	"chronicle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/post/comment
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		PostID  uint   `json:"postId"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
	}

	comment, err := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		UserID:  userID,
		PostID:  req.PostID,
		Content: req.Comment,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishBroadcastEvent(EventCommentCreated, map[string]interface{}{
		"comment_id": comment.ID,
		"post_id":    comment.PostID,
		"user_id":    comment.UserID,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// EditComment handles POST /api/post/editComment
func (s *Server) EditComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		CommentID uint   `json:"commentId"`
		Comment   string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.CommentID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid comment ID"))
	}

	comment, err := s.commentService.UpdateComment(ctx, service.UpdateCommentInput{
		UserID:    userID,
		CommentID: req.CommentID,
		Content:   req.Comment,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishBroadcastEvent(EventCommentUpdated, map[string]interface{}{
		"comment_id": comment.ID,
		"post_id":    comment.PostID,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(comment)
}

// DeleteComment handles POST /api/post/deleteComment
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		CommentID uint `json:"commentId"`
	}
	if err := c.BodyParser(&req); err != nil || req.CommentID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid comment ID"))
	}

	if err := s.commentService.DeleteComment(ctx, service.DeleteCommentInput{
		UserID:    userID,
		CommentID: req.CommentID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	s.publishBroadcastEvent(EventCommentDeleted, map[string]interface{}{
		"comment_id": req.CommentID,
		"deleted_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.SendStatus(fiber.StatusNoContent)
}
