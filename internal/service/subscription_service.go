package service

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/repository"
)

// SubscriptionService handles channel subscriptions.
type SubscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
}

// SubscriptionToggleResult reports the subscription state after a toggle.
type SubscriptionToggleResult struct {
	IsSubscribed bool `json:"is_subscribed"`
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo}
}

// Toggle flips the caller's subscription to a channel. Subscribing to
// yourself is rejected.
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID uint) (*SubscriptionToggleResult, error) {
	if subscriberID == channelID {
		return nil, models.NewBadRequestError("You cannot subscribe to your own channel")
	}
	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		return nil, err
	}

	subscribed, err := s.subRepo.IsSubscribed(ctx, subscriberID, channelID)
	if err != nil {
		return nil, err
	}
	if subscribed {
		if err := s.subRepo.Remove(ctx, subscriberID, channelID); err != nil {
			return nil, err
		}
		return &SubscriptionToggleResult{IsSubscribed: false}, nil
	}
	if err := s.subRepo.Add(ctx, subscriberID, channelID); err != nil {
		return nil, err
	}
	return &SubscriptionToggleResult{IsSubscribed: true}, nil
}

// ListSubscribers returns the users subscribed to a channel.
func (s *SubscriptionService) ListSubscribers(ctx context.Context, channelID uint, page, limit int) (*models.Page[models.Subscription], error) {
	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		return nil, err
	}
	return s.subRepo.ListSubscribers(ctx, channelID, page, limit)
}

// ListSubscribedChannels returns the channels a user subscribes to.
func (s *SubscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID uint, page, limit int) (*models.Page[models.Subscription], error) {
	if _, err := s.userRepo.GetByID(ctx, subscriberID); err != nil {
		return nil, err
	}
	return s.subRepo.ListSubscribedChannels(ctx, subscriberID, page, limit)
}
