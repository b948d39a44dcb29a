package models

import "time"

// Like is a user -> post edge. Unlike posts and comments it is removed
// with a hard delete; counts only consider existing rows.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_pair" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_pair;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
