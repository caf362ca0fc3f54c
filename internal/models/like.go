package models

import (
	"time"
)

// Like records that a user liked exactly one of a video, a comment, or a
// tweet. Presence of a row means "liked"; absence means "not liked".
// Each (user, target) pair is unique. Postgres treats NULLs as distinct in
// unique indexes, so the three composite indexes never collide with rows
// that target a different entity type.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_video;uniqueIndex:idx_like_user_comment;uniqueIndex:idx_like_user_tweet" json:"user_id"`
	VideoID   *uint     `gorm:"uniqueIndex:idx_like_user_video" json:"video_id,omitempty"`
	CommentID *uint     `gorm:"uniqueIndex:idx_like_user_comment" json:"comment_id,omitempty"`
	TweetID   *uint     `gorm:"uniqueIndex:idx_like_user_tweet" json:"tweet_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Video *Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}
