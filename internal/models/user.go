package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. Soft-deleted users stay in the
// table so that their follow/like/comment rows remain valid, but every
// listing join filters them out.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	FullName     string         `json:"full_name"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Profile is a user enriched with relationship and activity counts,
// always computed at read time.
type Profile struct {
	User
	FollowingCount int64 `json:"following_count"`
	FollowersCount int64 `json:"followers_count"`
	PostsCount     int64 `json:"posts_count"`
}
