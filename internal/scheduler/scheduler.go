// Package scheduler promotes due scheduled posts to published on a
// fixed interval.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ripple/internal/events"
	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/observability"
)

// Catalog is the slice of the post store the scheduler needs.
type Catalog interface {
	PromoteDue(ctx context.Context) ([]*models.Post, error)
}

const cycleTimeout = 30 * time.Second

// Scheduler runs promotion cycles. A cycle that fails is logged and the
// ticker keeps going, so missed posts are picked up by the next tick.
type Scheduler struct {
	catalog   Catalog
	publisher events.Publisher

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func New(catalog Catalog, publisher events.Publisher) *Scheduler {
	return &Scheduler{
		catalog:   catalog,
		publisher: publisher,
	}
}

// Start launches the promotion loop. The first cycle runs immediately,
// then every interval. Starting a running scheduler is a no-op.
func (s *Scheduler) Start(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		middleware.Logger.Info("publication scheduler already running")
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	middleware.Logger.Info("publication scheduler started",
		slog.Duration("interval", interval))

	go s.loop(interval, s.stopCh, s.doneCh)
}

// Stop halts the loop and waits for an in-flight cycle to finish.
// Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	done := s.doneCh
	s.mu.Unlock()

	<-done
	middleware.Logger.Info("publication scheduler stopped")
}

// Running reports whether the loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) loop(interval time.Duration, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	s.runCycle()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.runCycle()
		}
	}
}

func (s *Scheduler) runCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
	defer cancel()

	promoted, err := s.catalog.PromoteDue(ctx)
	if err != nil {
		observability.SchedulerCycles.WithLabelValues("error").Inc()
		middleware.Logger.ErrorContext(ctx, "promotion cycle failed",
			slog.String("error", err.Error()))
		return
	}

	observability.SchedulerCycles.WithLabelValues("ok").Inc()
	if len(promoted) == 0 {
		return
	}

	observability.PostsPromoted.Add(float64(len(promoted)))
	middleware.Logger.InfoContext(ctx, "promoted scheduled posts",
		slog.Int("count", len(promoted)))

	for _, post := range promoted {
		_ = s.publisher.Publish(ctx, events.SubjectPostPublished, events.PostPublishedEvent{
			PostID:      post.ID,
			UserID:      post.UserID,
			PublishedAt: post.CreatedAt,
		})
	}
}
