package repository

import (
	"context"

	"ripple/internal/database"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow graph data operations
type FollowRepository interface {
	Create(ctx context.Context, followerID, followingID uint) (bool, error)
	Delete(ctx context.Context, followerID, followingID uint) (bool, error)
	Exists(ctx context.Context, followerID, followingID uint) (bool, error)
	ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error)
	ListFollowers(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error)
	Counts(ctx context.Context, userID uint) (*models.FollowCounts, error)
}

// followRepository implements FollowRepository
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts a follow edge idempotently and reports whether a new edge
// was created. Replays hit the unique pair index and affect zero rows.
func (r *followRepository) Create(ctx context.Context, followerID, followingID uint) (bool, error) {
	var created bool
	err := database.WithRetry(ctx, "follows.create", func() error {
		result := r.db.WithContext(ctx).Exec(
			`INSERT INTO follows (follower_id, following_id, created_at)
			 VALUES (?, ?, NOW())
			 ON CONFLICT (follower_id, following_id) DO NOTHING`,
			followerID, followingID,
		)
		created = result.RowsAffected > 0
		return result.Error
	})
	return created, err
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID uint) (bool, error) {
	var deleted bool
	err := database.WithRetry(ctx, "follows.delete", func() error {
		result := r.db.WithContext(ctx).
			Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Delete(&models.Follow{})
		deleted = result.RowsAffected > 0
		return result.Error
	})
	return deleted, err
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	err := database.WithRetry(ctx, "follows.exists", func() error {
		return r.db.WithContext(ctx).
			Model(&models.Follow{}).
			Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Count(&count).Error
	})
	return count > 0, err
}

// ListFollowing returns the users followed by userID, most recently
// followed first. Soft-deleted users are excluded.
func (r *followRepository) ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	var users []*models.User
	err := database.WithRetry(ctx, "follows.list_following", func() error {
		return r.db.WithContext(ctx).
			Table("users").
			Joins("JOIN follows ON follows.following_id = users.id").
			Where("follows.follower_id = ? AND users.deleted_at IS NULL", userID).
			Order("follows.created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&users).Error
	})
	return users, err
}

// ListFollowers returns the users following userID, most recent first.
func (r *followRepository) ListFollowers(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	var users []*models.User
	err := database.WithRetry(ctx, "follows.list_followers", func() error {
		return r.db.WithContext(ctx).
			Table("users").
			Joins("JOIN follows ON follows.follower_id = users.id").
			Where("follows.following_id = ? AND users.deleted_at IS NULL", userID).
			Order("follows.created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&users).Error
	})
	return users, err
}

func (r *followRepository) Counts(ctx context.Context, userID uint) (*models.FollowCounts, error) {
	counts := &models.FollowCounts{}
	err := database.WithRetry(ctx, "follows.counts", func() error {
		if err := r.db.WithContext(ctx).
			Model(&models.Follow{}).
			Where("follower_id = ?", userID).
			Count(&counts.FollowingCount).Error; err != nil {
			return err
		}
		return r.db.WithContext(ctx).
			Model(&models.Follow{}).
			Where("following_id = ?", userID).
			Count(&counts.FollowersCount).Error
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}
