package service

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/repository"
)

// LikeService implements the idempotent like toggles. A toggle reports the
// resulting state, not the action taken.
type LikeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
}

// ToggleResult reports the like state after a toggle.
type ToggleResult struct {
	IsLiked bool `json:"is_liked"`
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

// ToggleVideoLike flips the caller's like on a video.
func (s *LikeService) ToggleVideoLike(ctx context.Context, userID, videoID uint) (*ToggleResult, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID, userID); err != nil {
		return nil, err
	}
	return s.toggle(ctx, userID, repository.VideoTarget(videoID))
}

// ToggleCommentLike flips the caller's like on a comment.
func (s *LikeService) ToggleCommentLike(ctx context.Context, userID, commentID uint) (*ToggleResult, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}
	return s.toggle(ctx, userID, repository.CommentTarget(commentID))
}

// ToggleTweetLike flips the caller's like on a tweet.
func (s *LikeService) ToggleTweetLike(ctx context.Context, userID, tweetID uint) (*ToggleResult, error) {
	if _, err := s.tweetRepo.GetByID(ctx, tweetID); err != nil {
		return nil, err
	}
	return s.toggle(ctx, userID, repository.TweetTarget(tweetID))
}

func (s *LikeService) toggle(ctx context.Context, userID uint, target repository.LikeTarget) (*ToggleResult, error) {
	liked, err := s.likeRepo.IsLiked(ctx, userID, target)
	if err != nil {
		return nil, err
	}
	if liked {
		if err := s.likeRepo.Remove(ctx, userID, target); err != nil {
			return nil, err
		}
		return &ToggleResult{IsLiked: false}, nil
	}
	if err := s.likeRepo.Add(ctx, userID, target); err != nil {
		return nil, err
	}
	return &ToggleResult{IsLiked: true}, nil
}

// ListLikedVideos returns the caller's liked videos, most recent like first.
func (s *LikeService) ListLikedVideos(ctx context.Context, userID uint, page, limit int) (*models.Page[models.Like], error) {
	return s.likeRepo.ListLikedVideos(ctx, userID, page, limit)
}
