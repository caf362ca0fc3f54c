package server

import (
	"context"
	"strings"

	"vidtube/internal/middleware"
	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// bearerOrCookieToken pulls the access token from the Authorization header
// or, failing that, the accessToken cookie.
func bearerOrCookieToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.Cookies("accessToken")
}

// AuthRequired returns the authentication middleware. It verifies the access
// token and stores the user ID in locals and the request context.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerOrCookieToken(c)
		if tokenString == "" {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Authorization required"))
		}

		identity, err := s.tokens.VerifyAccessToken(tokenString)
		if err != nil {
			return models.RespondWithError(c, err)
		}

		setAuthenticatedUser(c, identity.ID)
		return c.Next()
	}
}

// OptionalAuth resolves the caller's identity when a valid token is present
// but lets anonymous requests through. Handlers behind it see user ID 0 for
// anonymous callers.
func (s *Server) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerOrCookieToken(c)
		if tokenString != "" {
			if identity, err := s.tokens.VerifyAccessToken(tokenString); err == nil {
				setAuthenticatedUser(c, identity.ID)
			}
		}
		return c.Next()
	}
}

func setAuthenticatedUser(c *fiber.Ctx, userID uint) {
	c.Locals("userID", userID)
	ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
	c.SetUserContext(ctx)
}
