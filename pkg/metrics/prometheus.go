// Package metrics provides Prometheus metrics for the moon survival service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// scoreBuckets cover 0 (perfect) up to the all-unknown penalty of 15*15.
var scoreBuckets = []float64{0, 2, 5, 10, 20, 30, 40, 60, 80, 112, 150, 225} //nolint:gochecknoglobals // constant buckets

// teamSizeBuckets cover typical classroom group sizes.
var teamSizeBuckets = []float64{1, 2, 3, 4, 5, 6, 8, 10, 15, 20, 30} //nolint:gochecknoglobals // constant buckets

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Core Business Metrics
	evaluations         prometheus.Counter
	evaluationScore     prometheus.Histogram
	unrecognizedItems   prometheus.Counter
	rejectedSubmissions *prometheus.CounterVec
	teamEvaluations     prometheus.Counter
	teamSize            prometheus.Histogram
	teamScore           prometheus.Histogram
	chatReplies         *prometheus.CounterVec
	chatLatency         prometheus.Histogram
	idempotentReplays   prometheus.Counter
	idempotencyEntries  prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "moonsurvival",
		subsystem:        "ranking",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.evaluations = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "evaluations_total",
		Help:        "Total number of single submissions scored",
		ConstLabels: m.constLabels,
	})

	m.evaluationScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "evaluation_score",
		Help:        "Distribution of divergence scores (0 is a perfect match)",
		Buckets:     scoreBuckets,
		ConstLabels: m.constLabels,
	})

	m.unrecognizedItems = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "unrecognized_items_total",
		Help:        "Total number of submitted names that matched no reference item",
		ConstLabels: m.constLabels,
	})

	m.rejectedSubmissions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rejected_submissions_total",
		Help:        "Submissions rejected at the boundary by reason",
		ConstLabels: m.constLabels,
	}, []string{"reason"})

	m.teamEvaluations = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "team_evaluations_total",
		Help:        "Total number of team aggregations",
		ConstLabels: m.constLabels,
	})

	m.teamSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "team_size",
		Help:        "Number of participants per team aggregation",
		Buckets:     teamSizeBuckets,
		ConstLabels: m.constLabels,
	})

	m.teamScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "team_score",
		Help:        "Distribution of team consensus scores",
		Buckets:     scoreBuckets,
		ConstLabels: m.constLabels,
	})

	m.chatReplies = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "chat_replies_total",
		Help:        "Chat replies by source (local, remote, fallback)",
		ConstLabels: m.constLabels,
	}, []string{"source"})

	m.chatLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "chat_latency_milliseconds",
		Help:        "Time to produce a chat reply in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.idempotentReplays = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "idempotent_replays_total",
		Help:        "Responses replayed for a repeated Idempotency-Key",
		ConstLabels: m.constLabels,
	})

	m.idempotencyEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "idempotency_cache_entries",
		Help:        "Responses currently held in the idempotency cache",
		ConstLabels: m.constLabels,
	})

	// HTTP Performance Metrics - User experience indicators
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_type_total",
			Help:        "Total number of errors by type and severity",
			ConstLabels: m.constLabels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_endpoint_total",
			Help:        "Total number of errors by HTTP endpoint",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_bytes",
		Help:        "Current memory allocation in bytes",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutines",
		Help:        "Current number of goroutines",
		ConstLabels: m.constLabels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_milliseconds",
		Help:        "Average GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100},
		ConstLabels: m.constLabels,
	})
}

// RecordEvaluation records one scored submission and how many of its names were unknown.
func (m *Manager) RecordEvaluation(score, unrecognized int) {
	m.evaluations.Inc()
	m.evaluationScore.Observe(float64(score))
	if unrecognized > 0 {
		m.unrecognizedItems.Add(float64(unrecognized))
	}
}

// RecordRejectedSubmission counts a submission rejected at the boundary.
func (m *Manager) RecordRejectedSubmission(reason string) {
	m.rejectedSubmissions.WithLabelValues(reason).Inc()
}

// RecordTeamEvaluation records one team aggregation.
func (m *Manager) RecordTeamEvaluation(size, score int) {
	m.teamEvaluations.Inc()
	m.teamSize.Observe(float64(size))
	m.teamScore.Observe(float64(score))
}

// RecordChatReply records a chat reply by source and its latency.
func (m *Manager) RecordChatReply(source string, latencyMs float64) {
	m.chatReplies.WithLabelValues(source).Inc()
	m.chatLatency.Observe(latencyMs)
}

// RecordEvaluation records one scored submission on the global manager.
func RecordEvaluation(score, unrecognized int) {
	globalManager.RecordEvaluation(score, unrecognized)
}

// RecordRejectedSubmission counts a rejected submission on the global manager.
func RecordRejectedSubmission(reason string) {
	globalManager.RecordRejectedSubmission(reason)
}

// RecordTeamEvaluation records a team aggregation on the global manager.
func RecordTeamEvaluation(size, score int) {
	globalManager.RecordTeamEvaluation(size, score)
}

// RecordChatReply records a chat reply on the global manager.
func RecordChatReply(source string, latencyMs float64) {
	globalManager.RecordChatReply(source, latencyMs)
}

// RecordIdempotentReplay increments the replayed responses counter.
func RecordIdempotentReplay() {
	globalManager.idempotentReplays.Inc()
}

// UpdateIdempotencyEntries sets the idempotency cache size.
func UpdateIdempotencyEntries(count int) {
	globalManager.idempotencyEntries.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error by HTTP endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the current memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
