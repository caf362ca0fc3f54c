package service

import (
	"context"
	"strings"

	"vidtube/internal/models"
	"vidtube/internal/repository"
)

const maxTweetLen = 280

// TweetService handles short text posts on a user's channel.
type TweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
}

type UpdateTweetInput struct {
	UserID  uint
	TweetID uint
	Content string
}

func NewTweetService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo}
}

func (s *TweetService) Create(ctx context.Context, userID uint, content string) (*models.Tweet, error) {
	content, err := validateTweetContent(content)
	if err != nil {
		return nil, err
	}
	tweet := &models.Tweet{Content: content, OwnerID: userID}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

// ListByOwner returns the user's tweets newest first. The owner must exist;
// an owner with no tweets gets an empty page.
func (s *TweetService) ListByOwner(ctx context.Context, ownerID, currentUserID uint, page, limit int) (*models.Page[models.Tweet], error) {
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.tweetRepo.ListByOwner(ctx, ownerID, currentUserID, page, limit)
}

func (s *TweetService) Update(ctx context.Context, in UpdateTweetInput) (*models.Tweet, error) {
	content, err := validateTweetContent(in.Content)
	if err != nil {
		return nil, err
	}
	tweet, err := s.ownedTweet(ctx, in.TweetID, in.UserID)
	if err != nil {
		return nil, err
	}
	tweet.Content = content
	if err := s.tweetRepo.Update(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) Delete(ctx context.Context, tweetID, userID uint) error {
	if _, err := s.ownedTweet(ctx, tweetID, userID); err != nil {
		return err
	}
	return s.tweetRepo.Delete(ctx, tweetID)
}

func (s *TweetService) ownedTweet(ctx context.Context, tweetID, userID uint) (*models.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet.OwnerID != userID {
		return nil, models.NewForbiddenError("You do not own this tweet")
	}
	return tweet, nil
}

func validateTweetContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", models.NewBadRequestError("Content is required")
	}
	if len(content) > maxTweetLen {
		return "", models.NewValidationError("Content too long (max 280 characters)")
	}
	return content, nil
}
