// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"ripple/internal/database"
	"ripple/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post catalog data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint, viewerID uint, limit, offset int) ([]*models.Post, error)
	ListScheduledByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	Delete(ctx context.Context, id uint, userID uint) (bool, error)
	PromoteDue(ctx context.Context) ([]*models.Post, error)
	Feed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return database.WithRetry(ctx, "posts.create", func() error {
		return r.db.WithContext(ctx).Create(post).Error
	})
}

// GetByID returns nil without error when the post is absent, soft deleted,
// authored by a soft-deleted user, or not yet visible to the viewer.
// Scheduled and draft posts are visible only to their author.
func (r *postRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	var post models.Post
	err := database.WithRetry(ctx, "posts.get", func() error {
		return r.applyEngagement(r.db.WithContext(ctx), viewerID).
			Preload("User").
			Joins("JOIN users ON users.id = posts.user_id AND users.deleted_at IS NULL").
			Where("posts.id = ? AND (posts.status = ? OR posts.user_id = ?)",
				id, models.PostStatusPublished, viewerID).
			First(&post).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, viewerID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := database.WithRetry(ctx, "posts.list_by_author", func() error {
		return r.applyEngagement(r.db.WithContext(ctx), viewerID).
			Preload("User").
			Joins("JOIN users ON users.id = posts.user_id AND users.deleted_at IS NULL").
			Where("posts.user_id = ? AND posts.status = ?", authorID, models.PostStatusPublished).
			Order("posts.created_at DESC, posts.id DESC").
			Limit(limit).
			Offset(offset).
			Find(&posts).Error
	})
	return posts, err
}

func (r *postRepository) ListScheduledByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := database.WithRetry(ctx, "posts.list_scheduled", func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ? AND status = ?", authorID, models.PostStatusScheduled).
			Order("scheduled_at ASC").
			Limit(limit).
			Offset(offset).
			Find(&posts).Error
	})
	return posts, err
}

// Delete soft deletes a post owned by userID. It reports whether a row was
// removed; a false result covers both absent posts and posts owned by
// someone else.
func (r *postRepository) Delete(ctx context.Context, id uint, userID uint) (bool, error) {
	var deleted bool
	err := database.WithRetry(ctx, "posts.delete", func() error {
		result := r.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", id, userID).
			Delete(&models.Post{})
		deleted = result.RowsAffected > 0
		return result.Error
	})
	return deleted, err
}

// PromoteDue flips every due scheduled post to published in a single
// atomic statement and returns the promoted rows. created_at is reset to
// the promotion time so feed recency reflects publication.
func (r *postRepository) PromoteDue(ctx context.Context) ([]*models.Post, error) {
	var promoted []*models.Post
	err := database.WithRetry(ctx, "posts.promote_due", func() error {
		promoted = nil
		return r.db.WithContext(ctx).
			Model(&promoted).
			Clauses(clause.Returning{}).
			Where("status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= NOW()", models.PostStatusScheduled).
			Updates(map[string]interface{}{
				"status":     models.PostStatusPublished,
				"created_at": gorm.Expr("NOW()"),
				"updated_at": gorm.Expr("NOW()"),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return promoted, nil
}

// Feed assembles the viewer's timeline at read time: their own published
// posts plus those of authors they follow, newest first with id as the
// tiebreaker.
func (r *postRepository) Feed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := database.WithRetry(ctx, "posts.feed", func() error {
		return r.applyEngagement(r.db.WithContext(ctx), viewerID).
			Preload("User").
			Joins("JOIN users ON users.id = posts.user_id AND users.deleted_at IS NULL").
			Where("posts.status = ?", models.PostStatusPublished).
			Where("(posts.user_id = ? OR posts.user_id IN (SELECT following_id FROM follows WHERE follower_id = ?))",
				viewerID, viewerID).
			Order("posts.created_at DESC, posts.id DESC").
			Limit(limit).
			Offset(offset).
			Find(&posts).Error
	})
	return posts, err
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := database.WithRetry(ctx, "posts.count_by_author", func() error {
		return r.db.WithContext(ctx).
			Model(&models.Post{}).
			Where("user_id = ? AND status = ?", authorID, models.PostStatusPublished).
			Count(&count).Error
	})
	return count, err
}

// applyEngagement adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyEngagement(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if viewerID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked_by_viewer", viewerID)
	}

	return db.Select(selectQuery + ", false as liked_by_viewer")
}
