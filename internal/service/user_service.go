package service

import (
	"context"
	"strings"

	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/storage"
	"vidtube/internal/validation"
)

// UserService covers profile reads and account updates.
type UserService struct {
	userRepo repository.UserRepository
	uploader storage.Uploader
}

type UpdateAccountInput struct {
	UserID   uint
	FullName string
	Email    string
}

func NewUserService(userRepo repository.UserRepository, uploader storage.Uploader) *UserService {
	return &UserService{userRepo: userRepo, uploader: uploader}
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateAccount changes full name and email. Both are required; the email
// must stay unique.
func (s *UserService) UpdateAccount(ctx context.Context, in UpdateAccountInput) (*models.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.FullName == "" || in.Email == "" {
		return nil, models.NewBadRequestError("Full name and email are required")
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	// Uncached read: Update saves the whole row, and a cached copy lacks
	// the password hash and refresh token.
	user, err := s.userRepo.GetByIDFresh(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if in.Email != user.Email {
		other, err := s.userRepo.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, models.NewConflictError("Email already in use")
		}
	}

	user.FullName = in.FullName
	user.Email = in.Email
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateAvatar uploads the new avatar and swaps the URL on the user.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, localPath string) (*models.User, error) {
	return s.updateImage(ctx, userID, localPath, "avatars", func(u *models.User, url string) {
		u.Avatar = url
	})
}

// UpdateCoverImage uploads the new cover image and swaps the URL on the user.
func (s *UserService) UpdateCoverImage(ctx context.Context, userID uint, localPath string) (*models.User, error) {
	return s.updateImage(ctx, userID, localPath, "covers", func(u *models.User, url string) {
		u.CoverImage = url
	})
}

func (s *UserService) updateImage(ctx context.Context, userID uint, localPath, kind string, assign func(*models.User, string)) (*models.User, error) {
	if localPath == "" {
		return nil, models.NewBadRequestError("Image file is required")
	}
	url, err := s.uploader.Upload(ctx, localPath, kind)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user, err := s.userRepo.GetByIDFresh(ctx, userID)
	if err != nil {
		return nil, err
	}
	assign(user, url)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetChannelProfile returns the public channel view for a username, with
// subscriber counts and, when the caller is known, their subscription state.
func (s *UserService) GetChannelProfile(ctx context.Context, username string, currentUserID uint) (*models.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, models.NewBadRequestError("Username is required")
	}
	return s.userRepo.GetChannelProfile(ctx, username, currentUserID)
}

func (s *UserService) GetWatchHistory(ctx context.Context, userID uint, page, limit int) (*models.Page[models.Video], error) {
	return s.userRepo.GetWatchHistory(ctx, userID, page, limit)
}
