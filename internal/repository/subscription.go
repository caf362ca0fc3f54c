package repository

import (
	"context"

	"vidtube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRepository defines persistence operations for channel
// subscriptions.
type SubscriptionRepository interface {
	IsSubscribed(ctx context.Context, subscriberID, channelID uint) (bool, error)
	Add(ctx context.Context, subscriberID, channelID uint) error
	Remove(ctx context.Context, subscriberID, channelID uint) error
	ListSubscribers(ctx context.Context, channelID uint, page, limit int) (*models.Page[models.Subscription], error)
	ListSubscribedChannels(ctx context.Context, subscriberID uint, page, limit int) (*models.Page[models.Subscription], error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) IsSubscribed(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *subscriptionRepository) Add(ctx context.Context, subscriberID, channelID uint) error {
	sub := models.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&sub).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *subscriptionRepository) Remove(ctx context.Context, subscriberID, channelID uint) error {
	err := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&models.Subscription{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID uint, page, limit int) (*models.Page[models.Subscription], error) {
	countQ := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("subscriptions.channel_id = ?", channelID)
	findQ := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("subscriptions.channel_id = ?", channelID).
		Preload("Subscriber").
		Order("subscriptions.created_at DESC")

	return paginate[models.Subscription](countQ, findQ, page, limit)
}

func (r *subscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID uint, page, limit int) (*models.Page[models.Subscription], error) {
	countQ := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("subscriptions.subscriber_id = ?", subscriberID)
	findQ := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Preload("Channel").
		Order("subscriptions.created_at DESC")

	return paginate[models.Subscription](countQ, findQ, page, limit)
}
