package repository

import (
	"context"

	"vidtube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeTarget identifies exactly one likeable entity. Exactly one field is
// non-nil, matching the partial unique indexes on the likes table.
type LikeTarget struct {
	VideoID   *uint
	CommentID *uint
	TweetID   *uint
}

// VideoTarget builds a LikeTarget for a video.
func VideoTarget(id uint) LikeTarget { return LikeTarget{VideoID: &id} }

// CommentTarget builds a LikeTarget for a comment.
func CommentTarget(id uint) LikeTarget { return LikeTarget{CommentID: &id} }

// TweetTarget builds a LikeTarget for a tweet.
func TweetTarget(id uint) LikeTarget { return LikeTarget{TweetID: &id} }

// LikeRepository defines persistence operations for likes across videos,
// comments and tweets.
type LikeRepository interface {
	IsLiked(ctx context.Context, userID uint, target LikeTarget) (bool, error)
	Add(ctx context.Context, userID uint, target LikeTarget) error
	Remove(ctx context.Context, userID uint, target LikeTarget) error
	ListLikedVideos(ctx context.Context, userID uint, page, limit int) (*models.Page[models.Like], error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) scope(db *gorm.DB, userID uint, target LikeTarget) *gorm.DB {
	q := db.Where("user_id = ?", userID)
	switch {
	case target.VideoID != nil:
		return q.Where("video_id = ?", *target.VideoID)
	case target.CommentID != nil:
		return q.Where("comment_id = ?", *target.CommentID)
	default:
		return q.Where("tweet_id = ?", *target.TweetID)
	}
}

func (r *likeRepository) IsLiked(ctx context.Context, userID uint, target LikeTarget) (bool, error) {
	var count int64
	err := r.scope(r.db.WithContext(ctx).Model(&models.Like{}), userID, target).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Add inserts the like row. A concurrent duplicate is swallowed by the
// unique index together with ON CONFLICT DO NOTHING, keeping the toggle
// idempotent under races.
func (r *likeRepository) Add(ctx context.Context, userID uint, target LikeTarget) error {
	like := models.Like{
		UserID:    userID,
		VideoID:   target.VideoID,
		CommentID: target.CommentID,
		TweetID:   target.TweetID,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *likeRepository) Remove(ctx context.Context, userID uint, target LikeTarget) error {
	err := r.scope(r.db.WithContext(ctx), userID, target).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListLikedVideos returns the user's video likes, most recently liked first,
// with each video and its owner preloaded.
func (r *likeRepository) ListLikedVideos(ctx context.Context, userID uint, page, limit int) (*models.Page[models.Like], error) {
	countQ := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("likes.user_id = ? AND likes.video_id IS NOT NULL", userID)
	findQ := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("likes.user_id = ? AND likes.video_id IS NOT NULL", userID).
		Preload("Video.Owner").
		Order("likes.created_at DESC")

	return paginate[models.Like](countQ, findQ, page, limit)
}
