package service

import (
	"context"
	"strings"

	"vidtube/internal/models"
	"vidtube/internal/repository"
)

// PlaylistService handles playlist CRUD and membership. All mutations are
// owner-gated.
type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
}

type CreatePlaylistInput struct {
	OwnerID     uint
	Name        string
	Description string
}

type UpdatePlaylistInput struct {
	UserID      uint
	PlaylistID  uint
	Name        string
	Description string
}

func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, videoRepo: videoRepo}
}

func (s *PlaylistService) Create(ctx context.Context, in CreatePlaylistInput) (*models.Playlist, error) {
	name, description, err := validatePlaylistFields(in.Name, in.Description)
	if err != nil {
		return nil, err
	}
	playlist := &models.Playlist{
		Name:        name,
		Description: description,
		OwnerID:     in.OwnerID,
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// Get returns the playlist with aggregates and its published videos.
func (s *PlaylistService) Get(ctx context.Context, playlistID uint) (*models.Playlist, error) {
	return s.playlistRepo.GetByIDDetailed(ctx, playlistID)
}

func (s *PlaylistService) ListByOwner(ctx context.Context, ownerID uint, page, limit int) (*models.Page[models.Playlist], error) {
	return s.playlistRepo.ListByOwner(ctx, ownerID, page, limit)
}

func (s *PlaylistService) Update(ctx context.Context, in UpdatePlaylistInput) (*models.Playlist, error) {
	name, description, err := validatePlaylistFields(in.Name, in.Description)
	if err != nil {
		return nil, err
	}
	playlist, err := s.ownedPlaylist(ctx, in.PlaylistID, in.UserID)
	if err != nil {
		return nil, err
	}
	playlist.Name = name
	playlist.Description = description
	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return s.playlistRepo.GetByIDDetailed(ctx, playlist.ID)
}

func (s *PlaylistService) Delete(ctx context.Context, playlistID, userID uint) error {
	if _, err := s.ownedPlaylist(ctx, playlistID, userID); err != nil {
		return err
	}
	return s.playlistRepo.Delete(ctx, playlistID)
}

// AddVideo puts an existing video into the caller's playlist. Re-adding is
// a no-op.
func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, userID uint) (*models.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, playlistID, userID); err != nil {
		return nil, err
	}
	if _, err := s.videoRepo.GetByID(ctx, videoID, userID); err != nil {
		return nil, err
	}
	if err := s.playlistRepo.AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	return s.playlistRepo.GetByIDDetailed(ctx, playlistID)
}

// RemoveVideo takes a video out of the caller's playlist. Removing a video
// that is not a member is a no-op.
func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, userID uint) (*models.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, playlistID, userID); err != nil {
		return nil, err
	}
	if err := s.playlistRepo.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	return s.playlistRepo.GetByIDDetailed(ctx, playlistID)
}

func (s *PlaylistService) ownedPlaylist(ctx context.Context, playlistID, userID uint) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != userID {
		return nil, models.NewForbiddenError("You do not own this playlist")
	}
	return playlist, nil
}

func validatePlaylistFields(name, description string) (string, string, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return "", "", models.NewBadRequestError("Name and description are required")
	}
	return name, description, nil
}
