package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vireo_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vireo_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// WebSocketConnectionsTotal is the gauge of active feed connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vireo_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// FeedEventsTotal counts feed events fanned out by type.
	FeedEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vireo_feed_events_total",
		Help: "Total feed events published by type",
	}, []string{"event_type"})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vireo_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})

	// LikeRetriesTotal counts like-counter retries caused by concurrent writers.
	LikeRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vireo_like_retries_total",
		Help: "Total number of like counter compare-and-update retries",
	})

	// MediaUploadBytes records uploaded blob sizes.
	MediaUploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vireo_media_upload_bytes",
		Help:    "Size distribution of uploaded media blobs",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// RecordFeedEvent increments the feed events counter for the event type.
func RecordFeedEvent(eventType string) {
	FeedEventsTotal.WithLabelValues(eventType).Inc()
}
