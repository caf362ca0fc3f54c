package models

import (
	"time"
)

// Tweet represents a short text post on a user's channel.
type Tweet struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`
	OwnerID uint   `gorm:"not null;index" json:"owner_id"`
	Owner   User   `gorm:"foreignKey:OwnerID" json:"owner"`
	// LikesCount is not persisted; computed at query time
	LikesCount int64 `gorm:"->" json:"likes_count"`
	// IsLiked indicates whether the requesting user liked this tweet (computed)
	IsLiked   bool      `gorm:"->" json:"is_liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
