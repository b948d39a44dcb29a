// Package events publishes domain events to NATS for downstream
// consumers. Publishing is best effort: delivery failures are logged
// and never block the request path.
package events

import "time"

const (
	SubjectPostCreated   = "post.created"
	SubjectPostPublished = "post.published"
	SubjectUserFollowed  = "user.followed"
)

// PostCreatedEvent is emitted when a post becomes visible at creation time.
type PostCreatedEvent struct {
	PostID    uint      `json:"post_id"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PostPublishedEvent is emitted when a scheduled post is promoted.
type PostPublishedEvent struct {
	PostID      uint      `json:"post_id"`
	UserID      uint      `json:"user_id"`
	PublishedAt time.Time `json:"published_at"`
}

// UserFollowedEvent is emitted when a follow edge is created.
type UserFollowedEvent struct {
	FollowerID  uint      `json:"follower_id"`
	FollowingID uint      `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}
