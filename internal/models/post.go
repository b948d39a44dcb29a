package models

import (
	"time"

	"gorm.io/gorm"
)

// Post lifecycle states. Deletion is not a status value: deleted posts
// keep their status and gain a DeletedAt timestamp, so engagement rows
// stay consistent for audit.
const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
)

// Post represents a post in the Ripple application.
type Post struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;index" json:"user_id"`
	User            User       `gorm:"foreignKey:UserID" json:"user"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	MediaURL        string     `json:"media_url,omitempty"`
	CommentsEnabled bool       `gorm:"not null;default:true" json:"comments_enabled"`
	Status          string     `gorm:"not null;default:published;index" json:"status"`
	ScheduledAt     *time.Time `gorm:"index" json:"scheduled_at,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->;-:migration" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->;-:migration" json:"comments_count"`
	// LikedByViewer indicates whether the requesting user liked this post (computed)
	LikedByViewer bool           `gorm:"->;-:migration" json:"liked_by_viewer"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
