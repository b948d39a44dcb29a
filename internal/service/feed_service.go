package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"

	"github.com/prometheus/client_golang/prometheus"
)

// FeedService assembles timelines at read time. Nothing is precomputed:
// every request runs one query over the viewer's follow set with
// engagement subqueries.
type FeedService struct {
	postRepo repository.PostRepository
}

func NewFeedService(postRepo repository.PostRepository) *FeedService {
	return &FeedService{postRepo: postRepo}
}

// AssembleFeed returns the viewer's own and followed authors' published
// posts, newest first.
func (s *FeedService) AssembleFeed(ctx context.Context, viewerID uint, limit, offset int) (models.Page[*models.Post], error) {
	timer := prometheus.NewTimer(observability.FeedAssemblyLatency)
	defer timer.ObserveDuration()

	posts, err := s.postRepo.Feed(ctx, viewerID, limit, offset)
	if err != nil {
		return models.Page[*models.Post]{}, err
	}
	return models.NewPage(posts, limit, offset), nil
}
