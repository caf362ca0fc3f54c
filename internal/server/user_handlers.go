package server

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/service"

	"github.com/gofiber/fiber/v2"
)

type updateAccountRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// GetCurrentUser returns the authenticated user's profile.
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user, err := s.userService.GetByID(requestContext(c), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, user, "Current user fetched successfully")
}

// UpdateAccount changes the caller's full name and email.
func (s *Server) UpdateAccount(c *fiber.Ctx) error {
	var req updateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewBadRequestError("Invalid request body"))
	}

	user, err := s.userService.UpdateAccount(requestContext(c), service.UpdateAccountInput{
		UserID:   currentUserID(c),
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, user, "Account details updated successfully")
}

// UpdateAvatar replaces the caller's avatar with the uploaded file.
func (s *Server) UpdateAvatar(c *fiber.Ctx) error {
	return s.updateUserImage(c, "avatar", s.userService.UpdateAvatar, "Avatar updated successfully")
}

// UpdateCoverImage replaces the caller's cover image with the uploaded file.
func (s *Server) UpdateCoverImage(c *fiber.Ctx) error {
	return s.updateUserImage(c, "coverImage", s.userService.UpdateCoverImage, "Cover image updated successfully")
}

func (s *Server) updateUserImage(
	c *fiber.Ctx,
	field string,
	update func(ctx context.Context, userID uint, path string) (*models.User, error),
	message string,
) error {
	path, cleanup, err := s.formFilePath(c, field)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	defer cleanup()

	if path == "" {
		return models.RespondWithError(c, models.NewBadRequestError("Image file is required"))
	}

	user, err := update(requestContext(c), currentUserID(c), path)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, user, message)
}

// GetChannelProfile returns the public channel view for a username.
func (s *Server) GetChannelProfile(c *fiber.Ctx) error {
	profile, err := s.userService.GetChannelProfile(requestContext(c), c.Params("username"), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, profile, "Channel profile fetched successfully")
}

// GetWatchHistory returns the caller's watch history, oldest first.
func (s *Server) GetWatchHistory(c *fiber.Ctx) error {
	page, limit := parsePageParams(c)
	history, err := s.userService.GetWatchHistory(requestContext(c), currentUserID(c), page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, history, "Watch history fetched successfully")
}
