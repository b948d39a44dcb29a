package repository

import (
	"context"
	"errors"

	"ripple/internal/database"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment ledger data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	Update(ctx context.Context, id, userID uint, content string) (*models.Comment, error)
	Delete(ctx context.Context, id, userID uint) (bool, error)
	ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error)
	CountForPost(ctx context.Context, postID uint) (int64, error)
}

// commentRepository implements CommentRepository
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return database.WithRetry(ctx, "comments.create", func() error {
		return r.db.WithContext(ctx).Create(comment).Error
	})
}

// GetByID returns nil without error when the comment is absent or deleted.
func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := database.WithRetry(ctx, "comments.get", func() error {
		return r.db.WithContext(ctx).Preload("User").First(&comment, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// Update rewrites the content of a comment owned by userID and returns the
// updated row. A nil result covers absent comments and comments owned by
// someone else alike.
func (r *commentRepository) Update(ctx context.Context, id, userID uint, content string) (*models.Comment, error) {
	var updated bool
	err := database.WithRetry(ctx, "comments.update", func() error {
		result := r.db.WithContext(ctx).
			Model(&models.Comment{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("content", content)
		updated = result.RowsAffected > 0
		return result.Error
	})
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// Delete soft deletes a comment owned by userID and reports whether a row
// was removed.
func (r *commentRepository) Delete(ctx context.Context, id, userID uint) (bool, error) {
	var deleted bool
	err := database.WithRetry(ctx, "comments.delete", func() error {
		result := r.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", id, userID).
			Delete(&models.Comment{})
		deleted = result.RowsAffected > 0
		return result.Error
	})
	return deleted, err
}

// ListByPost returns the comments on a post in chronological order.
// Comments whose author has been soft deleted are filtered out.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := database.WithRetry(ctx, "comments.list_by_post", func() error {
		return r.db.WithContext(ctx).
			Select("comments.*").
			Preload("User").
			Joins("JOIN users ON users.id = comments.user_id AND users.deleted_at IS NULL").
			Where("comments.post_id = ?", postID).
			Order("comments.created_at ASC").
			Limit(limit).
			Offset(offset).
			Find(&comments).Error
	})
	return comments, err
}

func (r *commentRepository) CountForPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := database.WithRetry(ctx, "comments.count_for_post", func() error {
		return r.db.WithContext(ctx).
			Model(&models.Comment{}).
			Where("post_id = ?", postID).
			Count(&count).Error
	})
	return count, err
}
