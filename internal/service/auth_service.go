package service

import (
	"context"
	"strings"

	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/storage"
	"vidtube/internal/token"
	"vidtube/internal/validation"
)

// AuthService implements registration, login, token rotation and password
// changes. Exactly one refresh token is valid per user at any time; issuing
// a new one invalidates whatever was stored before.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Service
	uploader storage.Uploader
}

type RegisterInput struct {
	Username       string
	Email          string
	FullName       string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

type LoginInput struct {
	Username string
	Email    string
	Password string
}

// TokenPair carries a freshly issued access/refresh pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordInput struct {
	UserID      uint
	OldPassword string
	NewPassword string
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Service, uploader storage.Uploader) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens, uploader: uploader}
}

// Register validates all fields, checks username/email availability, uploads
// the avatar (required) and optional cover image, and creates the user.
// Field errors are aggregated so the client sees everything wrong at once.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	var fields []string
	if err := validation.ValidateUsername(in.Username); err != nil {
		fields = append(fields, err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		fields = append(fields, err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		fields = append(fields, err.Error())
	}
	if in.FullName == "" {
		fields = append(fields, "Full name is required")
	}
	if in.AvatarPath == "" {
		fields = append(fields, "Avatar file is required")
	}
	if len(fields) > 0 {
		return nil, models.NewValidationError("All fields are required", fields...)
	}

	existing, err := s.userRepo.GetByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("User with email or username already exists")
	}

	avatarURL, err := s.uploader.Upload(ctx, in.AvatarPath, "avatars")
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "avatar upload failed", "error", err)
		return nil, models.NewInternalError(err)
	}
	var coverURL string
	if in.CoverImagePath != "" {
		coverURL, err = s.uploader.Upload(ctx, in.CoverImagePath, "covers")
		if err != nil {
			middleware.Logger.ErrorContext(ctx, "cover image upload failed", "error", err)
			return nil, models.NewInternalError(err)
		}
	}

	hash, err := s.tokens.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:   in.Username,
		Email:      in.Email,
		FullName:   in.FullName,
		Avatar:     avatarURL,
		CoverImage: coverURL,
		Password:   hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login accepts a username or an email. An absent account is reported as
// not found; a wrong password as unauthorized.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, *TokenPair, error) {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Username == "" && in.Email == "" {
		return nil, nil, models.NewBadRequestError("Username or email is required")
	}

	user, err := s.userRepo.GetByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, models.NewNotFoundError("User", in.Username+in.Email)
	}
	if !s.tokens.VerifyPassword(in.Password, user.Password) {
		return nil, nil, models.NewUnauthorizedError("Invalid user credentials")
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	middleware.Logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return user, pair, nil
}

// Refresh redeems a refresh token for a new pair. The presented token must
// verify AND match the single token stored on the user row; the stored token
// is overwritten, so each refresh token can be redeemed at most once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, models.NewUnauthorizedError("Refresh token is required")
	}

	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	// Uncached read: the stored refresh token never survives the cache.
	user, err := s.userRepo.GetByIDFresh(ctx, userID)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid refresh token")
	}
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, models.NewUnauthorizedError("Refresh token is expired or already used")
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "tokens rotated", "user_id", user.ID)
	return pair, nil
}

// Logout clears the stored refresh token, invalidating the session.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, nil); err != nil {
		return err
	}
	middleware.Logger.InfoContext(ctx, "user logged out", "user_id", userID)
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	// Uncached read: the password hash never survives the cache.
	user, err := s.userRepo.GetByIDFresh(ctx, in.UserID)
	if err != nil {
		return err
	}
	if !s.tokens.VerifyPassword(in.OldPassword, user.Password) {
		return models.NewBadRequestError("Invalid old password")
	}

	hash, err := s.tokens.HashPassword(in.NewPassword)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = hash
	return s.userRepo.Update(ctx, user)
}

func (s *AuthService) issuePair(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	refresh, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, &refresh); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
