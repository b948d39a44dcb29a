// Package service implements the application's business logic on top of
// the repository layer.
package service

import (
	"context"
	"time"
	"unicode/utf8"

	"ripple/internal/cache"
	"ripple/internal/events"
	"ripple/internal/models"
	"ripple/internal/repository"
)

const maxContentLen = 10000 // characters

type PostService struct {
	postRepo  repository.PostRepository
	publisher events.Publisher
}

type CreatePostInput struct {
	UserID          uint
	Content         string
	MediaURL        string
	CommentsEnabled *bool
	ScheduledAt     *time.Time
}

type ListPostsInput struct {
	AuthorID uint
	ViewerID uint
	Limit    int
	Offset   int
}

func NewPostService(postRepo repository.PostRepository, publisher events.Publisher) *PostService {
	return &PostService{
		postRepo:  postRepo,
		publisher: publisher,
	}
}

// CreatePost creates a post, published immediately or held as scheduled
// when a future ScheduledAt is supplied.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 10000 characters)")
	}

	post := &models.Post{
		UserID:          in.UserID,
		Content:         in.Content,
		MediaURL:        in.MediaURL,
		CommentsEnabled: true,
		Status:          models.PostStatusPublished,
	}
	if in.CommentsEnabled != nil {
		post.CommentsEnabled = *in.CommentsEnabled
	}

	if in.ScheduledAt != nil {
		if !in.ScheduledAt.After(time.Now()) {
			return nil, models.NewValidationError("scheduled_at must be in the future")
		}
		post.Status = models.PostStatusScheduled
		post.ScheduledAt = in.ScheduledAt
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	cache.InvalidateProfile(ctx, in.UserID)

	if post.Status == models.PostStatusPublished {
		// Best effort, the publisher logs its own failures.
		_ = s.publisher.Publish(ctx, events.SubjectPostCreated, events.PostCreatedEvent{
			PostID:    post.ID,
			UserID:    post.UserID,
			CreatedAt: post.CreatedAt,
		})
	}

	return post, nil
}

// GetPost returns a post visible to the viewer. Scheduled posts resolve
// only for their author; everyone else sees the same NotFound as for a
// post that never existed.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return post, nil
}

// ListPostsByAuthor returns the author's published posts, newest first.
func (s *PostService) ListPostsByAuthor(ctx context.Context, in ListPostsInput) (models.Page[*models.Post], error) {
	posts, err := s.postRepo.ListByAuthor(ctx, in.AuthorID, in.ViewerID, in.Limit, in.Offset)
	if err != nil {
		return models.Page[*models.Post]{}, err
	}
	return models.NewPage(posts, in.Limit, in.Offset), nil
}

// ListScheduledPosts returns the caller's own pending scheduled posts in
// ascending publication order.
func (s *PostService) ListScheduledPosts(ctx context.Context, userID uint, limit, offset int) (models.Page[*models.Post], error) {
	posts, err := s.postRepo.ListScheduledByAuthor(ctx, userID, limit, offset)
	if err != nil {
		return models.Page[*models.Post]{}, err
	}
	return models.NewPage(posts, limit, offset), nil
}

// DeletePost removes a post owned by the caller. Posts that are absent or
// owned by someone else yield the same NotFound.
func (s *PostService) DeletePost(ctx context.Context, postID, userID uint) error {
	deleted, err := s.postRepo.Delete(ctx, postID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("Post", postID)
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}
