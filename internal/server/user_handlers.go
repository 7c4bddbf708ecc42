package server

import (
	"chronicle/internal/models"
	"chronicle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserLogin handles GET /api/user/userLogin
// Lazily creates the local user for a verified Google identity.
func (s *Server) UserLogin(c *fiber.Ctx) error {
	ctx := c.Context()
	claims := claimsFromLocals(c)
	if claims == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Authorization required"))
	}

	user, created, err := s.userService.Login(ctx, service.LoginInput{
		GoogleID:      claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
		GivenName:     claims.GivenName,
		Picture:       claims.Picture,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	status := fiber.StatusOK
	message := "exists"
	if created {
		status = fiber.StatusCreated
		message = "created"
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"user":    user,
	})
}

// UserDetails handles GET /api/user/userDetails
func (s *Server) UserDetails(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// MakeAuthor handles POST /api/user/makeAuthor
func (s *Server) MakeAuthor(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		PenName string `json:"penName"`
		Bio     string `json:"bio"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.userService.MakeAuthor(ctx, service.MakeAuthorInput{
		UserID:  userID,
		PenName: req.PenName,
		Bio:     req.Bio,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// IsAuthor handles GET /api/user/isAuthor
func (s *Server) IsAuthor(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	isAuthor, err := s.userService.IsAuthor(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"isAuthor": isAuthor})
}

// MyBlogs handles GET /api/user/myBlogs
func (s *Server) MyBlogs(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	page := parsePagination(c, 20)
	posts, err := s.userService.MyBlogs(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// MyLikedPosts handles GET /api/user/myLikedPosts
func (s *Server) MyLikedPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.requireUser(c)
	if err != nil {
		return nil
	}

	page := parsePagination(c, 20)
	posts, err := s.userService.MyLikedPosts(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}
