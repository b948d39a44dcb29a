package service

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/repository"
)

type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	postRepo   repository.PostRepository
}

type UpdateProfileInput struct {
	UserID   uint
	FullName *string
}

func NewUserService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	postRepo repository.PostRepository,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
		postRepo:   postRepo,
	}
}

func (s *UserService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", userID)
	}
	return user, nil
}

// Profile composes a user with their follow and post counts. The result
// is cached briefly; mutations that change counts invalidate it.
func (s *UserService) Profile(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := cache.Aside(ctx, cache.ProfileKey(userID), &profile, cache.ProfileTTL, func() error {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return models.NewNotFoundError("User", userID)
		}

		counts, err := s.followRepo.Counts(ctx, userID)
		if err != nil {
			return err
		}
		postsCount, err := s.postRepo.CountByAuthor(ctx, userID)
		if err != nil {
			return err
		}

		profile = models.Profile{
			User:           *user,
			FollowingCount: counts.FollowingCount,
			FollowersCount: counts.FollowersCount,
			PostsCount:     postsCount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Search matches users by username or full name fragment.
func (s *UserService) Search(ctx context.Context, query string, limit, offset int) (models.Page[*models.User], error) {
	if query == "" {
		return models.Page[*models.User]{}, models.NewValidationError("Search query is required")
	}
	users, err := s.userRepo.Search(ctx, query, limit, offset)
	if err != nil {
		return models.Page[*models.User]{}, err
	}
	return models.NewPage(users, limit, offset), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", in.UserID)
	}

	if in.FullName != nil {
		user.FullName = *in.FullName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, in.UserID)
	return user, nil
}
