package models

import (
	"time"
)

// Playlist is an ordered set of videos owned by a user. Membership lives in
// the playlist_videos join table; duplicates are suppressed on insert.
type Playlist struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"type:text;not null" json:"description"`
	OwnerID     uint    `gorm:"not null;index" json:"owner_id"`
	Owner       User    `gorm:"foreignKey:OwnerID" json:"owner"`
	Videos      []Video `gorm:"many2many:playlist_videos;" json:"videos,omitempty"`
	// TotalVideos is not persisted; computed at query time
	TotalVideos int64 `gorm:"->" json:"total_videos"`
	// TotalViews sums the view counts of member videos (computed)
	TotalViews int64     `gorm:"->" json:"total_views"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PlaylistVideo is the join table between playlists and videos. The
// composite primary key suppresses duplicate inserts; CreatedAt preserves
// insertion order.
type PlaylistVideo struct {
	PlaylistID uint      `gorm:"primaryKey" json:"playlist_id"`
	VideoID    uint      `gorm:"primaryKey" json:"video_id"`
	CreatedAt  time.Time `json:"created_at"`
}
