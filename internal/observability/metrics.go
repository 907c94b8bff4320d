package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ticketx_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FeedQueryLatency records feed query latency by feed kind.
	FeedQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ticketx_feed_query_latency_seconds",
		Help:    "Feed query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"feed"})

	// SessionsCreated counts sessions created by flow (signup or login).
	SessionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ticketx_sessions_created_total",
		Help: "Total number of sessions created",
	}, []string{"flow"})

	// CSRFRejections counts state-changing requests rejected by the CSRF gate.
	CSRFRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketx_csrf_rejections_total",
		Help: "Total number of requests rejected by the CSRF gate",
	})

	// PostsCreated counts posts created.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketx_posts_created_total",
		Help: "Total number of posts created",
	})
)

// ObserveFeedQuery records the latency of one feed query.
func ObserveFeedQuery(feed string, start time.Time) {
	FeedQueryLatency.WithLabelValues(feed).Observe(time.Since(start).Seconds())
}
