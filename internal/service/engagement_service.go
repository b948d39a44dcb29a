package service

import (
	"context"
	"unicode/utf8"

	"ripple/internal/models"
	"ripple/internal/repository"
)

const maxCommentLen = 2000 // characters

// EngagementService records likes and comments against visible posts.
type EngagementService struct {
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type AddCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

func NewEngagementService(
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
) *EngagementService {
	return &EngagementService{
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// visiblePost resolves a post the user may engage with, mapping absent,
// deleted, and still-scheduled posts to the same NotFound.
func (s *EngagementService) visiblePost(ctx context.Context, postID, userID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return post, nil
}

// LikePost likes a post idempotently and reports whether the like is new.
func (s *EngagementService) LikePost(ctx context.Context, userID, postID uint) (bool, error) {
	if _, err := s.visiblePost(ctx, postID, userID); err != nil {
		return false, err
	}
	return s.likeRepo.Create(ctx, userID, postID)
}

// UnlikePost removes a like and reports whether one existed.
func (s *EngagementService) UnlikePost(ctx context.Context, userID, postID uint) (bool, error) {
	return s.likeRepo.Delete(ctx, userID, postID)
}

func (s *EngagementService) HasLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.likeRepo.Exists(ctx, userID, postID)
}

// ListLikers returns users who liked a post, most recent like first.
func (s *EngagementService) ListLikers(ctx context.Context, postID, viewerID uint, limit, offset int) (models.Page[*models.User], error) {
	if _, err := s.visiblePost(ctx, postID, viewerID); err != nil {
		return models.Page[*models.User]{}, err
	}
	users, err := s.likeRepo.ListLikers(ctx, postID, limit, offset)
	if err != nil {
		return models.Page[*models.User]{}, err
	}
	return models.NewPage(users, limit, offset), nil
}

// ListLikedPosts returns published posts the user has liked.
func (s *EngagementService) ListLikedPosts(ctx context.Context, userID uint, limit, offset int) (models.Page[*models.Post], error) {
	posts, err := s.likeRepo.ListLikedPosts(ctx, userID, limit, offset)
	if err != nil {
		return models.Page[*models.Post]{}, err
	}
	return models.NewPage(posts, limit, offset), nil
}

func (s *EngagementService) LikeCount(ctx context.Context, postID uint) (int64, error) {
	return s.likeRepo.CountForPost(ctx, postID)
}

// AddComment adds a comment to a visible post. Posts with comments turned
// off reject the write with a precondition failure rather than NotFound.
func (s *EngagementService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Content too long (max 2000 characters)")
	}

	post, err := s.visiblePost(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if !post.CommentsEnabled {
		return nil, models.NewPreconditionFailedError("Comments are disabled on this post")
	}

	comment := &models.Comment{
		UserID:  in.UserID,
		PostID:  in.PostID,
		Content: in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// EditComment rewrites a comment owned by the caller. Comments that are
// absent or owned by someone else yield the same NotFound.
func (s *EngagementService) EditComment(ctx context.Context, commentID, userID uint, content string) (*models.Comment, error) {
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(content) > maxCommentLen {
		return nil, models.NewValidationError("Content too long (max 2000 characters)")
	}

	comment, err := s.commentRepo.Update(ctx, commentID, userID, content)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	return comment, nil
}

// RemoveComment deletes a comment owned by the caller.
func (s *EngagementService) RemoveComment(ctx context.Context, commentID, userID uint) error {
	deleted, err := s.commentRepo.Delete(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("Comment", commentID)
	}
	return nil
}

// ListComments returns a visible post's comments in chronological order.
func (s *EngagementService) ListComments(ctx context.Context, postID, viewerID uint, limit, offset int) (models.Page[*models.Comment], error) {
	if _, err := s.visiblePost(ctx, postID, viewerID); err != nil {
		return models.Page[*models.Comment]{}, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID, limit, offset)
	if err != nil {
		return models.Page[*models.Comment]{}, err
	}
	return models.NewPage(comments, limit, offset), nil
}

func (s *EngagementService) CommentCount(ctx context.Context, postID uint) (int64, error) {
	return s.commentRepo.CountForPost(ctx, postID)
}
