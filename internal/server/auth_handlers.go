package server

import (
	"time"

	"vidtube/internal/models"
	"vidtube/internal/service"

	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register handles user signup. The request is multipart: text fields plus
// a required avatar file and an optional cover image.
func (s *Server) Register(c *fiber.Ctx) error {
	avatarPath, cleanupAvatar, err := s.formFilePath(c, "avatar")
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	defer cleanupAvatar()

	coverPath, cleanupCover, err := s.formFilePath(c, "coverImage")
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	defer cleanupCover()

	user, err := s.authService.Register(requestContext(c), service.RegisterInput{
		Username:       c.FormValue("username"),
		Email:          c.FormValue("email"),
		FullName:       c.FormValue("fullName"),
		Password:       c.FormValue("password"),
		AvatarPath:     avatarPath,
		CoverImagePath: coverPath,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, user, "User registered successfully")
}

// Login authenticates by username or email and sets the token cookies.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewBadRequestError("Invalid request body"))
	}

	user, pair, err := s.authService.Login(requestContext(c), service.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.setTokenCookies(c, pair)
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"user":          user,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, "User logged in successfully")
}

// Logout invalidates the stored refresh token and clears the cookies.
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.authService.Logout(requestContext(c), currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	s.clearTokenCookies(c)
	return models.Respond(c, fiber.StatusOK, nil, "User logged out successfully")
}

// RefreshToken redeems a refresh token (cookie or body) for a fresh pair.
func (s *Server) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refreshToken")
	if refreshToken == "" {
		var req refreshRequest
		if err := c.BodyParser(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	pair, err := s.authService.Refresh(requestContext(c), refreshToken)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.setTokenCookies(c, pair)
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, "Access token refreshed")
}

// ChangePassword verifies the old password before setting the new one.
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewBadRequestError("Invalid request body"))
	}

	err := s.authService.ChangePassword(requestContext(c), service.ChangePasswordInput{
		UserID:      currentUserID(c),
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Password changed successfully")
}

func (s *Server) setTokenCookies(c *fiber.Ctx, pair *service.TokenPair) {
	secure := s.config.Env == "production" || s.config.Env == "prod"
	c.Cookie(&fiber.Cookie{
		Name:     "accessToken",
		Value:    pair.AccessToken,
		Expires:  time.Now().Add(s.config.AccessTokenTTL()),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refreshToken",
		Value:    pair.RefreshToken,
		Expires:  time.Now().Add(s.config.RefreshTokenTTL()),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (s *Server) clearTokenCookies(c *fiber.Ctx) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
		})
	}
}
