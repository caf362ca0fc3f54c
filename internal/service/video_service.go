package service

import (
	"context"
	"strings"

	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/storage"
)

// VideoService handles video publishing, lookup, listing and owner-gated
// mutations.
type VideoService struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	uploader  storage.Uploader
}

type PublishVideoInput struct {
	OwnerID       uint
	Title         string
	Description   string
	Duration      float64
	VideoPath     string
	ThumbnailPath string
}

type ListVideosInput struct {
	Query         string
	OwnerID       uint
	SortBy        string
	SortOrder     string
	Page          int
	Limit         int
	CurrentUserID uint
}

type UpdateVideoInput struct {
	UserID        uint
	VideoID       uint
	Title         string
	Description   string
	ThumbnailPath string
}

func NewVideoService(videoRepo repository.VideoRepository, userRepo repository.UserRepository, uploader storage.Uploader) *VideoService {
	return &VideoService{videoRepo: videoRepo, userRepo: userRepo, uploader: uploader}
}

// Publish uploads the video file and thumbnail to blob storage and creates
// the video record, published by default.
func (s *VideoService) Publish(ctx context.Context, in PublishVideoInput) (*models.Video, error) {
	in.Title = strings.TrimSpace(in.Title)
	var fields []string
	if in.Title == "" {
		fields = append(fields, "Title is required")
	}
	if in.VideoPath == "" {
		fields = append(fields, "Video file is required")
	}
	if in.ThumbnailPath == "" {
		fields = append(fields, "Thumbnail file is required")
	}
	if len(fields) > 0 {
		return nil, models.NewValidationError("All fields are required", fields...)
	}

	videoURL, err := s.uploader.Upload(ctx, in.VideoPath, "videos")
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "video upload failed", "error", err)
		return nil, models.NewInternalError(err)
	}
	thumbURL, err := s.uploader.Upload(ctx, in.ThumbnailPath, "thumbnails")
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "thumbnail upload failed", "error", err)
		return nil, models.NewInternalError(err)
	}

	video := &models.Video{
		OwnerID:     in.OwnerID,
		Title:       in.Title,
		Description: in.Description,
		Duration:    in.Duration,
		VideoFile:   videoURL,
		Thumbnail:   thumbURL,
		IsPublished: true,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "video published", "video_id", video.ID, "owner_id", in.OwnerID)
	return s.videoRepo.GetByID(ctx, video.ID, in.OwnerID)
}

// Get returns the video with its computed fields. An unpublished video is
// visible only to its owner. A successful view by someone other than the
// owner bumps the view counter and lands in the viewer's watch history.
func (s *VideoService) Get(ctx context.Context, videoID, currentUserID uint) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID, currentUserID)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && video.OwnerID != currentUserID {
		return nil, models.NewNotFoundError("Video", videoID)
	}

	if currentUserID != 0 && video.OwnerID != currentUserID {
		if err := s.videoRepo.IncrementViews(ctx, videoID); err != nil {
			middleware.Logger.WarnContext(ctx, "view increment failed", "video_id", videoID, "error", err)
		} else {
			video.Views++
		}
		if err := s.userRepo.AddWatchHistory(ctx, currentUserID, videoID); err != nil {
			middleware.Logger.WarnContext(ctx, "watch history append failed", "video_id", videoID, "error", err)
		}
	}
	return video, nil
}

// List returns published videos matching the filters. Owners listing their
// own channel also see unpublished videos.
func (s *VideoService) List(ctx context.Context, in ListVideosInput) (*models.Page[models.Video], error) {
	return s.videoRepo.List(ctx, repository.VideoListOptions{
		Query:              in.Query,
		OwnerID:            in.OwnerID,
		SortBy:             in.SortBy,
		SortOrder:          in.SortOrder,
		Page:               in.Page,
		Limit:              in.Limit,
		CurrentUserID:      in.CurrentUserID,
		IncludeUnpublished: in.OwnerID != 0 && in.OwnerID == in.CurrentUserID,
	})
}

// Update edits title, description and optionally the thumbnail. Owner only.
func (s *VideoService) Update(ctx context.Context, in UpdateVideoInput) (*models.Video, error) {
	video, err := s.ownedVideo(ctx, in.VideoID, in.UserID)
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, models.NewBadRequestError("Title is required")
	}
	video.Title = in.Title
	video.Description = in.Description

	if in.ThumbnailPath != "" {
		thumbURL, err := s.uploader.Upload(ctx, in.ThumbnailPath, "thumbnails")
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		video.Thumbnail = thumbURL
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return s.videoRepo.GetByID(ctx, video.ID, in.UserID)
}

// Delete removes the video and everything hanging off it. Owner only.
func (s *VideoService) Delete(ctx context.Context, videoID, userID uint) error {
	if _, err := s.ownedVideo(ctx, videoID, userID); err != nil {
		return err
	}
	if err := s.videoRepo.Delete(ctx, videoID); err != nil {
		return err
	}
	middleware.Logger.InfoContext(ctx, "video deleted", "video_id", videoID, "user_id", userID)
	return nil
}

// TogglePublish flips the publish flag. Owner only.
func (s *VideoService) TogglePublish(ctx context.Context, videoID, userID uint) (*models.Video, error) {
	video, err := s.ownedVideo(ctx, videoID, userID)
	if err != nil {
		return nil, err
	}
	video.IsPublished = !video.IsPublished
	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) ownedVideo(ctx context.Context, videoID, userID uint) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID, userID)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != userID {
		return nil, models.NewForbiddenError("You do not own this video")
	}
	return video, nil
}
