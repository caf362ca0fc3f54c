// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account. Username and email are stored
// lowercase and carry unique indexes.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName     string    `gorm:"not null" json:"full_name"`
	Avatar       string    `gorm:"not null" json:"avatar"`
	CoverImage   string    `json:"cover_image"`
	Password     string    `gorm:"not null" json:"-"`
	RefreshToken *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ChannelProfile is the public view of a user's channel including
// subscription aggregates. Computed at query time, never persisted.
type ChannelProfile struct {
	ID                uint   `json:"id"`
	Username          string `json:"username"`
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	Avatar            string `json:"avatar"`
	CoverImage        string `json:"cover_image"`
	SubscribersCount  int64  `json:"subscribers_count"`
	SubscribedToCount int64  `json:"subscribed_to_count"`
	IsSubscribed      bool   `json:"is_subscribed"`
}

// WatchHistory records that a user watched a video. The (user, video) pair
// is unique so repeated views keep the original insertion order.
type WatchHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_watch_user_video" json:"user_id"`
	VideoID   uint      `gorm:"not null;uniqueIndex:idx_watch_user_video" json:"video_id"`
	CreatedAt time.Time `json:"created_at"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Video Video `gorm:"foreignKey:VideoID" json:"-"`
}
