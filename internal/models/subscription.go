package models

import (
	"time"
)

// Subscription records that a subscriber follows a channel (both users).
// The (subscriber, channel) pair is unique.
type Subscription struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubscriberID uint      `gorm:"not null;uniqueIndex:idx_subscriber_channel" json:"subscriber_id"`
	ChannelID    uint      `gorm:"not null;uniqueIndex:idx_subscriber_channel" json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`

	Subscriber User `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
	Channel    User `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
}
