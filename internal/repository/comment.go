package repository

import (
	"context"
	"errors"

	"vidtube/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for video comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByVideo(ctx context.Context, videoID uint, currentUserID uint, page, limit int) (*models.Page[models.Comment], error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) applyCommentDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "comments.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.comment_id = comments.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.comment_id = comments.id AND likes.user_id = ?) as is_liked", currentUserID)
	}
	return db.Select(selectQuery + ", false as is_liked")
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID uint, currentUserID uint, page, limit int) (*models.Page[models.Comment], error) {
	countQ := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("comments.video_id = ?", videoID)
	findQ := r.applyCommentDetails(r.db.WithContext(ctx).Model(&models.Comment{}), currentUserID).
		Where("comments.video_id = ?", videoID).
		Preload("Owner").
		Order("comments.created_at DESC")

	return paginate[models.Comment](countQ, findQ, page, limit)
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the comment and its likes in one transaction.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
