package service

import (
	"context"

	"ripple/internal/models"
)

type postRepoStub struct {
	createFn                func(context.Context, *models.Post) error
	getByIDFn               func(context.Context, uint, uint) (*models.Post, error)
	listByAuthorFn          func(context.Context, uint, uint, int, int) ([]*models.Post, error)
	listScheduledByAuthorFn func(context.Context, uint, int, int) ([]*models.Post, error)
	deleteFn                func(context.Context, uint, uint) (bool, error)
	promoteDueFn            func(context.Context) ([]*models.Post, error)
	feedFn                  func(context.Context, uint, int, int) ([]*models.Post, error)
	countByAuthorFn         func(context.Context, uint) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID, viewerID uint, limit, offset int) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, viewerID, limit, offset)
}
func (s *postRepoStub) ListScheduledByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return s.listScheduledByAuthorFn(ctx, authorID, limit, offset)
}
func (s *postRepoStub) Delete(ctx context.Context, id, userID uint) (bool, error) {
	return s.deleteFn(ctx, id, userID)
}
func (s *postRepoStub) PromoteDue(ctx context.Context) ([]*models.Post, error) {
	return s.promoteDueFn(ctx)
}
func (s *postRepoStub) Feed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error) {
	return s.feedFn(ctx, viewerID, limit, offset)
}
func (s *postRepoStub) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countByAuthorFn(ctx, authorID)
}

type followRepoStub struct {
	createFn        func(context.Context, uint, uint) (bool, error)
	deleteFn        func(context.Context, uint, uint) (bool, error)
	existsFn        func(context.Context, uint, uint) (bool, error)
	listFollowingFn func(context.Context, uint, int, int) ([]*models.User, error)
	listFollowersFn func(context.Context, uint, int, int) ([]*models.User, error)
	countsFn        func(context.Context, uint) (*models.FollowCounts, error)
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.createFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.deleteFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followingID)
}
func (s *followRepoStub) ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	return s.listFollowingFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) ListFollowers(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	return s.listFollowersFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) Counts(ctx context.Context, userID uint) (*models.FollowCounts, error) {
	return s.countsFn(ctx, userID)
}

type likeRepoStub struct {
	createFn         func(context.Context, uint, uint) (bool, error)
	deleteFn         func(context.Context, uint, uint) (bool, error)
	existsFn         func(context.Context, uint, uint) (bool, error)
	listLikersFn     func(context.Context, uint, int, int) ([]*models.User, error)
	listLikedPostsFn func(context.Context, uint, int, int) ([]*models.Post, error)
	countForPostFn   func(context.Context, uint) (int64, error)
}

func (s *likeRepoStub) Create(ctx context.Context, userID, postID uint) (bool, error) {
	return s.createFn(ctx, userID, postID)
}
func (s *likeRepoStub) Delete(ctx context.Context, userID, postID uint) (bool, error) {
	return s.deleteFn(ctx, userID, postID)
}
func (s *likeRepoStub) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	return s.existsFn(ctx, userID, postID)
}
func (s *likeRepoStub) ListLikers(ctx context.Context, postID uint, limit, offset int) ([]*models.User, error) {
	return s.listLikersFn(ctx, postID, limit, offset)
}
func (s *likeRepoStub) ListLikedPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.listLikedPostsFn(ctx, userID, limit, offset)
}
func (s *likeRepoStub) CountForPost(ctx context.Context, postID uint) (int64, error) {
	return s.countForPostFn(ctx, postID)
}

type commentRepoStub struct {
	createFn       func(context.Context, *models.Comment) error
	getByIDFn      func(context.Context, uint) (*models.Comment, error)
	updateFn       func(context.Context, uint, uint, string) (*models.Comment, error)
	deleteFn       func(context.Context, uint, uint) (bool, error)
	listByPostFn   func(context.Context, uint, int, int) ([]*models.Comment, error)
	countForPostFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) Update(ctx context.Context, id, userID uint, content string) (*models.Comment, error) {
	return s.updateFn(ctx, id, userID, content)
}
func (s *commentRepoStub) Delete(ctx context.Context, id, userID uint) (bool, error) {
	return s.deleteFn(ctx, id, userID)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) CountForPost(ctx context.Context, postID uint) (int64, error) {
	return s.countForPostFn(ctx, postID)
}

type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	searchFn        func(context.Context, string, int, int) ([]*models.User, error)
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]*models.User, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

// publisherStub records published events.
type publisherStub struct {
	published []string
	err       error
}

func (s *publisherStub) Publish(_ context.Context, subject string, _ any) error {
	s.published = append(s.published, subject)
	return s.err
}
func (s *publisherStub) Close() {}
