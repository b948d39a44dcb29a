package repository

import (
	"context"

	"ripple/internal/database"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines the interface for like ledger data operations
type LikeRepository interface {
	Create(ctx context.Context, userID, postID uint) (bool, error)
	Delete(ctx context.Context, userID, postID uint) (bool, error)
	Exists(ctx context.Context, userID, postID uint) (bool, error)
	ListLikers(ctx context.Context, postID uint, limit, offset int) ([]*models.User, error)
	ListLikedPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	CountForPost(ctx context.Context, postID uint) (int64, error)
}

// likeRepository implements LikeRepository
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create records a like idempotently and reports whether a new row was
// inserted. Duplicate likes hit the unique pair index and affect nothing.
func (r *likeRepository) Create(ctx context.Context, userID, postID uint) (bool, error) {
	var created bool
	err := database.WithRetry(ctx, "likes.create", func() error {
		result := r.db.WithContext(ctx).Exec(
			`INSERT INTO likes (user_id, post_id, created_at)
			 VALUES (?, ?, NOW())
			 ON CONFLICT (user_id, post_id) DO NOTHING`,
			userID, postID,
		)
		created = result.RowsAffected > 0
		return result.Error
	})
	return created, err
}

// Delete hard deletes the like record.
func (r *likeRepository) Delete(ctx context.Context, userID, postID uint) (bool, error) {
	var deleted bool
	err := database.WithRetry(ctx, "likes.delete", func() error {
		result := r.db.WithContext(ctx).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&models.Like{})
		deleted = result.RowsAffected > 0
		return result.Error
	})
	return deleted, err
}

func (r *likeRepository) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := database.WithRetry(ctx, "likes.exists", func() error {
		return r.db.WithContext(ctx).
			Model(&models.Like{}).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Count(&count).Error
	})
	return count > 0, err
}

// ListLikers returns the users who liked a post, most recent like first.
func (r *likeRepository) ListLikers(ctx context.Context, postID uint, limit, offset int) ([]*models.User, error) {
	var users []*models.User
	err := database.WithRetry(ctx, "likes.list_likers", func() error {
		return r.db.WithContext(ctx).
			Table("users").
			Joins("JOIN likes ON likes.user_id = users.id").
			Where("likes.post_id = ? AND users.deleted_at IS NULL", postID).
			Order("likes.created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&users).Error
	})
	return users, err
}

// ListLikedPosts returns published posts the user has liked, most recent
// like first.
func (r *likeRepository) ListLikedPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := database.WithRetry(ctx, "likes.list_liked_posts", func() error {
		return r.db.WithContext(ctx).
			Table("posts").
			Select("posts.*, "+
				"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, "+
				"(SELECT COUNT(*) FROM likes l2 WHERE l2.post_id = posts.id) as likes_count, "+
				"true as liked_by_viewer").
			Joins("JOIN likes ON likes.post_id = posts.id").
			Where("likes.user_id = ? AND posts.status = ? AND posts.deleted_at IS NULL",
				userID, models.PostStatusPublished).
			Order("likes.created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&posts).Error
	})
	return posts, err
}

func (r *likeRepository) CountForPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := database.WithRetry(ctx, "likes.count_for_post", func() error {
		return r.db.WithContext(ctx).
			Model(&models.Like{}).
			Where("post_id = ?", postID).
			Count(&count).Error
	})
	return count, err
}
