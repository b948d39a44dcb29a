package service

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/events"
	"ripple/internal/models"
	"ripple/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	publisher  events.Publisher
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository, publisher events.Publisher) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		publisher:  publisher,
	}
}

// Follow creates a follow edge and reports whether it is new. Following
// again is a no-op, not an error.
func (s *FollowService) Follow(ctx context.Context, followerID, followingID uint) (bool, error) {
	if followerID == followingID {
		return false, models.NewValidationError("Cannot follow yourself")
	}

	target, err := s.userRepo.GetByID(ctx, followingID)
	if err != nil {
		return false, err
	}
	if target == nil {
		return false, models.NewNotFoundError("User", followingID)
	}

	created, err := s.followRepo.Create(ctx, followerID, followingID)
	if err != nil {
		return false, err
	}

	if created {
		cache.InvalidateProfile(ctx, followerID)
		cache.InvalidateProfile(ctx, followingID)
		_ = s.publisher.Publish(ctx, events.SubjectUserFollowed, events.UserFollowedEvent{
			FollowerID:  followerID,
			FollowingID: followingID,
		})
	}

	return created, nil
}

// Unfollow removes a follow edge and reports whether one existed.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	deleted, err := s.followRepo.Delete(ctx, followerID, followingID)
	if err != nil {
		return false, err
	}
	if deleted {
		cache.InvalidateProfile(ctx, followerID)
		cache.InvalidateProfile(ctx, followingID)
	}
	return deleted, nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followingID)
}

// ListFollowing returns the users someone follows, most recent edge first.
func (s *FollowService) ListFollowing(ctx context.Context, userID uint, limit, offset int) (models.Page[*models.User], error) {
	users, err := s.followRepo.ListFollowing(ctx, userID, limit, offset)
	if err != nil {
		return models.Page[*models.User]{}, err
	}
	return models.NewPage(users, limit, offset), nil
}

// ListFollowers returns someone's followers, most recent edge first.
func (s *FollowService) ListFollowers(ctx context.Context, userID uint, limit, offset int) (models.Page[*models.User], error) {
	users, err := s.followRepo.ListFollowers(ctx, userID, limit, offset)
	if err != nil {
		return models.Page[*models.User]{}, err
	}
	return models.NewPage(users, limit, offset), nil
}

func (s *FollowService) Counts(ctx context.Context, userID uint) (*models.FollowCounts, error) {
	return s.followRepo.Counts(ctx, userID)
}
