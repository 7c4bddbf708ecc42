package server

import (
	"context"
	"strings"

	"chronicle/internal/identity"
	"chronicle/internal/middleware"
	"chronicle/internal/models"

	"github.com/gofiber/fiber/v2"
)

// extractCredential pulls the Google credential from the request. Browser
// clients send it as a Bearer header; the SPA also sets an access_token
// cookie. WebSocket upgrades cannot carry headers, so the feed route accepts
// a token query parameter as well.
func (s *Server) extractCredential(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	if cookie := c.Cookies("access_token"); cookie != "" {
		return cookie
	}

	if strings.HasPrefix(c.Path(), "/api/ws") {
		return c.Query("token")
	}

	return ""
}

// AuthRequired returns the authentication middleware. It verifies the Google
// credential, stores the claims in locals, and resolves the local user row
// when one exists. Endpoints that need a local account call requireUser.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		credential := s.extractCredential(c)
		if credential == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Authorization required"))
		}

		claims, err := s.verifier.Verify(c.Context(), credential)
		if err != nil {
			return respondServiceError(c, err)
		}

		c.Locals("claims", claims)

		// The local user row is created lazily on first login, so its
		// absence is not an authentication failure here.
		user, err := s.userRepo.GetByGoogleID(c.Context(), claims.Subject)
		if err != nil {
			return respondServiceError(c, err)
		}
		if user != nil {
			c.Locals("userID", user.ID)
			// Sync to UserContext for logging and downstream services
			ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
			c.SetUserContext(ctx)
		}

		return c.Next()
	}
}

// claimsFromLocals returns the verified claims set by AuthRequired.
func claimsFromLocals(c *fiber.Ctx) *identity.Claims {
	claims, _ := c.Locals("claims").(*identity.Claims)
	return claims
}

// requireUser returns the caller's local user ID. If the verified identity
// has no local account yet, it writes a 404 and returns errResponseWritten;
// callers should then return nil.
func (s *Server) requireUser(c *fiber.Ctx) (uint, error) {
	if userID, ok := c.Locals("userID").(uint); ok && userID != 0 {
		return userID, nil
	}
	_ = models.RespondWithError(c, fiber.StatusNotFound,
		&models.AppError{Code: models.CodeNotFound, Message: "User not found, log in first"})
	return 0, errResponseWritten
}

// optionalUserID resolves the caller's local user ID on public endpoints so
// per-viewer fields (liked) can be computed. Any failure degrades to the
// anonymous view.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	credential := s.extractCredential(c)
	if credential == "" {
		return 0, false
	}

	claims, err := s.verifier.Verify(c.Context(), credential)
	if err != nil {
		return 0, false
	}

	user, err := s.userRepo.GetByGoogleID(c.Context(), claims.Subject)
	if err != nil || user == nil {
		return 0, false
	}
	return user.ID, true
}
