package server

import (
	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleVideoLike flips the caller's like on a video and reports the new state.
func (s *Server) ToggleVideoLike(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	result, err := s.likeService.ToggleVideoLike(requestContext(c), currentUserID(c), videoID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, result, "Video like toggled successfully")
}

// ToggleCommentLike flips the caller's like on a comment.
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	result, err := s.likeService.ToggleCommentLike(requestContext(c), currentUserID(c), commentID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, result, "Comment like toggled successfully")
}

// ToggleTweetLike flips the caller's like on a tweet.
func (s *Server) ToggleTweetLike(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "tweetId")
	if err != nil {
		return nil
	}

	result, err := s.likeService.ToggleTweetLike(requestContext(c), currentUserID(c), tweetID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, result, "Tweet like toggled successfully")
}

// GetLikedVideos lists the caller's liked videos, most recent like first.
func (s *Server) GetLikedVideos(c *fiber.Ctx) error {
	page, limit := parsePageParams(c)
	likes, err := s.likeService.ListLikedVideos(requestContext(c), currentUserID(c), page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, likes, "Liked videos fetched successfully")
}
