package server

import (
	"vidtube/internal/models"
	"vidtube/internal/service"

	"github.com/gofiber/fiber/v2"
)

type playlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreatePlaylist creates an empty playlist owned by the caller.
func (s *Server) CreatePlaylist(c *fiber.Ctx) error {
	var req playlistRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewBadRequestError("Invalid request body"))
	}

	playlist, err := s.playlistService.Create(requestContext(c), service.CreatePlaylistInput{
		OwnerID:     currentUserID(c),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, playlist, "Playlist created successfully")
}

// GetUserPlaylists lists a user's playlists with their aggregates.
func (s *Server) GetUserPlaylists(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	page, limit := parsePageParams(c)
	playlists, err := s.playlistService.ListByOwner(requestContext(c), userID, page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlists, "Playlists fetched successfully")
}

// GetPlaylist returns a playlist with its published videos and aggregates.
func (s *Server) GetPlaylist(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	playlist, err := s.playlistService.Get(requestContext(c), playlistID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Playlist fetched successfully")
}

// UpdatePlaylist renames a playlist or changes its description.
func (s *Server) UpdatePlaylist(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	var req playlistRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewBadRequestError("Invalid request body"))
	}

	playlist, err := s.playlistService.Update(requestContext(c), service.UpdatePlaylistInput{
		UserID:      currentUserID(c),
		PlaylistID:  playlistID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Playlist updated successfully")
}

// DeletePlaylist removes a playlist and its memberships.
func (s *Server) DeletePlaylist(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	if err := s.playlistService.Delete(requestContext(c), playlistID, currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Playlist deleted successfully")
}

// AddVideoToPlaylist puts a video into the caller's playlist.
func (s *Server) AddVideoToPlaylist(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	playlist, err := s.playlistService.AddVideo(requestContext(c), playlistID, videoID, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Video added to playlist successfully")
}

// RemoveVideoFromPlaylist takes a video out of the caller's playlist.
func (s *Server) RemoveVideoFromPlaylist(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	playlist, err := s.playlistService.RemoveVideo(requestContext(c), playlistID, videoID, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Video removed from playlist successfully")
}
