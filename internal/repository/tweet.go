package repository

import (
	"context"
	"errors"

	"vidtube/internal/models"

	"gorm.io/gorm"
)

// TweetRepository defines persistence operations for tweets.
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id uint) (*models.Tweet, error)
	ListByOwner(ctx context.Context, ownerID uint, currentUserID uint, page, limit int) (*models.Page[models.Tweet], error)
	Update(ctx context.Context, tweet *models.Tweet) error
	Delete(ctx context.Context, id uint) error
}

type tweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository creates a new tweet repository.
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) applyTweetDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "tweets.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.tweet_id = tweets.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.tweet_id = tweets.id AND likes.user_id = ?) as is_liked", currentUserID)
	}
	return db.Select(selectQuery + ", false as is_liked")
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).First(&tweet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tweet", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tweet, nil
}

// ListByOwner returns the owner's tweets newest first. An owner with no
// tweets yields an empty page, not an error.
func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID uint, currentUserID uint, page, limit int) (*models.Page[models.Tweet], error) {
	countQ := r.db.WithContext(ctx).Model(&models.Tweet{}).
		Where("tweets.owner_id = ?", ownerID)
	findQ := r.applyTweetDetails(r.db.WithContext(ctx).Model(&models.Tweet{}), currentUserID).
		Where("tweets.owner_id = ?", ownerID).
		Preload("Owner").
		Order("tweets.created_at DESC")

	return paginate[models.Tweet](countQ, findQ, page, limit)
}

func (r *tweetRepository) Update(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Save(tweet).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tweetRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tweet_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tweet{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
