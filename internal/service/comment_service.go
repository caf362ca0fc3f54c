package service

import (
	"context"
	"strings"

	"vidtube/internal/models"
	"vidtube/internal/repository"
)

const maxCommentLen = 10000

// CommentService handles comments on videos.
type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
}

type AddCommentInput struct {
	UserID  uint
	VideoID uint
	Content string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo}
}

// Add creates a comment on an existing video.
func (s *CommentService) Add(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	content, err := validateCommentContent(in.Content)
	if err != nil {
		return nil, err
	}
	if _, err := s.videoRepo.GetByID(ctx, in.VideoID, in.UserID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		OwnerID: in.UserID,
		VideoID: in.VideoID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByVideo returns the video's comments newest first.
func (s *CommentService) ListByVideo(ctx context.Context, videoID, currentUserID uint, page, limit int) (*models.Page[models.Comment], error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID, currentUserID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByVideo(ctx, videoID, currentUserID, page, limit)
}

// Update edits the comment text. Owner only.
func (s *CommentService) Update(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	content, err := validateCommentContent(in.Content)
	if err != nil {
		return nil, err
	}
	comment, err := s.ownedComment(ctx, in.CommentID, in.UserID)
	if err != nil {
		return nil, err
	}
	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes the comment and its likes. Owner only.
func (s *CommentService) Delete(ctx context.Context, commentID, userID uint) error {
	if _, err := s.ownedComment(ctx, commentID, userID); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}

func (s *CommentService) ownedComment(ctx context.Context, commentID, userID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != userID {
		return nil, models.NewForbiddenError("You do not own this comment")
	}
	return comment, nil
}

func validateCommentContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", models.NewBadRequestError("Content is required")
	}
	if len(content) > maxCommentLen {
		return "", models.NewValidationError("Content too long (max 10000 characters)")
	}
	return content, nil
}
