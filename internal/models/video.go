package models

import (
	"time"
)

// Video represents an uploaded video. VideoFile and Thumbnail hold public
// URLs returned by the blob storage service.
type Video struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OwnerID     uint    `gorm:"not null;index" json:"owner_id"`
	Owner       User    `gorm:"foreignKey:OwnerID" json:"owner"`
	VideoFile   string  `gorm:"not null" json:"video_file"`
	Thumbnail   string  `gorm:"not null" json:"thumbnail"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Duration    float64 `json:"duration"`
	Views       int64   `json:"views"`
	IsPublished bool    `gorm:"default:true" json:"is_published"`
	// LikesCount is not persisted; computed at query time
	LikesCount int64 `gorm:"->" json:"likes_count"`
	// IsLiked indicates whether the requesting user liked this video (computed)
	IsLiked   bool      `gorm:"->" json:"is_liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
