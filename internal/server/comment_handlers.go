package server

import (
	"vidtube/internal/models"
	"vidtube/internal/service"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Content string `json:"content"`
}

// GetComments lists a video's comments, newest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	page, limit := parsePageParams(c)
	comments, err := s.commentService.ListByVideo(requestContext(c), videoID, currentUserID(c), page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, comments, "Comments fetched successfully")
}

// AddComment creates a comment on a video.
func (s *Server) AddComment(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewBadRequestError("Invalid request body"))
	}

	comment, err := s.commentService.Add(requestContext(c), service.AddCommentInput{
		UserID:  currentUserID(c),
		VideoID: videoID,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, comment, "Comment added successfully")
}

// UpdateComment edits a comment's text.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewBadRequestError("Invalid request body"))
	}

	comment, err := s.commentService.Update(requestContext(c), service.UpdateCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, comment, "Comment updated successfully")
}

// DeleteComment removes a comment.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentService.Delete(requestContext(c), commentID, currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Comment deleted successfully")
}
