package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// SchedulerCycles counts promotion cycles by outcome ("ok" or "error").
	SchedulerCycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_scheduler_cycles_total",
		Help: "Total number of publication scheduler cycles by outcome",
	}, []string{"outcome"})

	// PostsPromoted counts scheduled posts flipped to published.
	PostsPromoted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_posts_promoted_total",
		Help: "Total number of scheduled posts promoted to published",
	})

	// StoreRetries counts transient storage faults that were retried.
	StoreRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_store_retries_total",
		Help: "Total number of retried transient storage faults by operation",
	}, []string{"operation"})

	// FeedAssemblyLatency records feed assembly latency in seconds.
	FeedAssemblyLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ripple_feed_assembly_latency_seconds",
		Help:    "Latency of fan-out-on-read feed assembly",
		Buckets: prometheus.DefBuckets,
	})
)
