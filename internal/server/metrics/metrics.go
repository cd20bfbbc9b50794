package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chronofeed_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chronofeed_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chronofeed_login_attempts_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	SessionResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chronofeed_session_resolutions_total",
			Help: "Total number of session token resolutions by result",
		},
		[]string{"result"},
	)

	FeedReadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chronofeed_feed_reads_total",
			Help: "Total number of feed page reads",
		},
	)

	FeedReadErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chronofeed_feed_read_errors_total",
			Help: "Total number of failed feed page reads by kind",
		},
		[]string{"kind"},
	)
)
