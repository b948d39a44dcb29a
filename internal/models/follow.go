package models

import "time"

// Follow is a directed follower -> followee edge. The composite unique
// index makes duplicate inserts conflict, which the repository resolves
// to an idempotent no-op.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follows_pair" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follows_pair" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// FollowCounts holds the relationship counts for one user.
type FollowCounts struct {
	FollowingCount int64 `json:"following_count"`
	FollowersCount int64 `json:"followers_count"`
}
