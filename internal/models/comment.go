package models

import (
	"time"
)

// Comment represents a comment on a video.
type Comment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`
	OwnerID uint   `gorm:"not null;index" json:"owner_id"`
	Owner   User   `gorm:"foreignKey:OwnerID" json:"owner"`
	VideoID uint   `gorm:"not null;index" json:"video_id"`
	Video   Video  `gorm:"foreignKey:VideoID" json:"-"`
	// LikesCount is not persisted; computed at query time
	LikesCount int64 `gorm:"->" json:"likes_count"`
	// IsLiked indicates whether the requesting user liked this comment (computed)
	IsLiked   bool      `gorm:"->" json:"is_liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
