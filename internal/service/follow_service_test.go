package service

import (
	"context"
	"testing"

	"ripple/internal/events"
	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_Follow(t *testing.T) {
	ctx := context.Background()

	t.Run("self-follow is rejected", func(t *testing.T) {
		svc := NewFollowService(&followRepoStub{}, &userRepoStub{}, &publisherStub{})

		_, err := svc.Follow(ctx, 1, 1)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("absent target maps to NotFound", func(t *testing.T) {
		users := &userRepoStub{
			getByIDFn: func(context.Context, uint) (*models.User, error) { return nil, nil },
		}
		svc := NewFollowService(&followRepoStub{}, users, &publisherStub{})

		_, err := svc.Follow(ctx, 1, 99)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("new edge publishes an event", func(t *testing.T) {
		users := &userRepoStub{
			getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
				return &models.User{ID: id}, nil
			},
		}
		follows := &followRepoStub{
			createFn: func(context.Context, uint, uint) (bool, error) { return true, nil },
		}
		pub := &publisherStub{}
		svc := NewFollowService(follows, users, pub)

		created, err := svc.Follow(ctx, 1, 2)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, []string{events.SubjectUserFollowed}, pub.published)
	})

	t.Run("replayed follow is a quiet no-op", func(t *testing.T) {
		users := &userRepoStub{
			getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
				return &models.User{ID: id}, nil
			},
		}
		follows := &followRepoStub{
			createFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
		}
		pub := &publisherStub{}
		svc := NewFollowService(follows, users, pub)

		created, err := svc.Follow(ctx, 1, 2)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Empty(t, pub.published)
	})
}

func TestFollowService_Unfollow(t *testing.T) {
	ctx := context.Background()

	follows := &followRepoStub{
		deleteFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
	}
	svc := NewFollowService(follows, &userRepoStub{}, &publisherStub{})

	existed, err := svc.Unfollow(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestFollowService_ListFollowing(t *testing.T) {
	ctx := context.Background()

	follows := &followRepoStub{
		listFollowingFn: func(context.Context, uint, int, int) ([]*models.User, error) {
			return []*models.User{{ID: 2, Username: "bob"}}, nil
		},
	}
	svc := NewFollowService(follows, &userRepoStub{}, &publisherStub{})

	page, err := svc.ListFollowing(ctx, 1, 20, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "bob", page.Items[0].Username)
	assert.False(t, page.HasMore)
}
