package server

import (
	"vidtube/internal/models"
	"vidtube/internal/service"

	"github.com/gofiber/fiber/v2"
)

type tweetRequest struct {
	Content string `json:"content"`
}

// CreateTweet posts a tweet on the caller's channel.
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	var req tweetRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewBadRequestError("Invalid request body"))
	}

	tweet, err := s.tweetService.Create(requestContext(c), currentUserID(c), req.Content)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, tweet, "Tweet created successfully")
}

// GetUserTweets lists a user's tweets, newest first. A user with no tweets
// gets an empty page.
func (s *Server) GetUserTweets(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	page, limit := parsePageParams(c)
	tweets, err := s.tweetService.ListByOwner(requestContext(c), userID, currentUserID(c), page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, tweets, "Tweets fetched successfully")
}

// UpdateTweet edits a tweet's text.
func (s *Server) UpdateTweet(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "tweetId")
	if err != nil {
		return nil
	}

	var req tweetRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewBadRequestError("Invalid request body"))
	}

	tweet, err := s.tweetService.Update(requestContext(c), service.UpdateTweetInput{
		UserID:  currentUserID(c),
		TweetID: tweetID,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, tweet, "Tweet updated successfully")
}

// DeleteTweet removes a tweet.
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "tweetId")
	if err != nil {
		return nil
	}

	if err := s.tweetService.Delete(requestContext(c), tweetID, currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Tweet deleted successfully")
}
