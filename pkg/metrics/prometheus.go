// Package metrics provides Prometheus metrics for the RONDO balancer service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the RONDO service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Core Business Metrics - What really matters for a balancer
	solvesTotal   prometheus.Counter
	solveFailures *prometheus.CounterVec
	solveDuration prometheus.Histogram
	rosterSize    prometheus.Histogram
	benchSize     prometheus.Histogram

	// Strategy Metrics - Per-generator performance and selection
	strategyBuilds        *prometheus.CounterVec
	strategyFailures      *prometheus.CounterVec
	strategyWins          *prometheus.CounterVec
	strategyBuildDuration *prometheus.HistogramVec
	refineIterations      *prometheus.HistogramVec

	// Quality Metrics - How balanced the last result was
	lastScore    prometheus.Gauge
	lastSkillGap prometheus.Gauge

	// Cache Metrics - Result cache effectiveness
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	cachedResults prometheus.Gauge

	// Validation Metrics
	validationRequests *prometheus.CounterVec

	// Operational Health Metrics
	activeSolves prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Enhanced Error Metrics - Detailed error tracking
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
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
		namespace:        "rondo",
		subsystem:        "balancer",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Core Business Metrics - Focus on what drives business value
	m.solvesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "solves_total",
		Help:      "Total number of successful balancing runs",
	})

	m.solveFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "solve_failures_total",
			Help:      "Total number of failed balancing runs by reason",
		},
		[]string{"reason"},
	)

	m.solveDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "solve_duration_milliseconds",
		Help:      "Histogram of end-to-end solve duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.rosterSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_size_players",
		Help:      "Distribution of roster sizes submitted for balancing",
		Buckets:   []float64{6, 10, 14, 18, 22, 30, 50, 100, 200},
	})

	m.benchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bench_size_players",
		Help:      "Distribution of bench sizes produced by the structure plan",
		Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 8, 12},
	})

	// Strategy Metrics - Per-generator performance and selection
	m.strategyBuilds = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "strategy_builds_total",
			Help:      "Total number of candidate builds by strategy",
		},
		[]string{"strategy"},
	)

	m.strategyFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "strategy_failures_total",
			Help:      "Total number of strategy build failures by strategy",
		},
		[]string{"strategy"},
	)

	m.strategyWins = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "strategy_wins_total",
			Help:      "Total number of times a strategy produced the selected result",
		},
		[]string{"strategy"},
	)

	m.strategyBuildDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "strategy_build_duration_milliseconds",
			Help:      "Candidate build and refine duration in milliseconds by strategy",
			Buckets:   m.histogramBuckets,
		},
		[]string{"strategy"},
	)

	m.refineIterations = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "refine_iterations",
			Help:      "Number of applied swap iterations per refined candidate",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 34, 50},
		},
		[]string{"strategy"},
	)

	// Quality Metrics - How balanced the last result was
	m.lastScore = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_score",
		Help:      "Penalty score of the most recently selected partition (lower is better)",
	})

	m.lastSkillGap = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_skill_gap",
		Help:      "Skill gap between strongest and weakest team in the last result",
	})

	// Cache Metrics - Result cache effectiveness
	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_hits_total",
		Help:      "Total number of solve results served from the cache",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_misses_total",
		Help:      "Total number of solve requests not found in the cache",
	})

	m.cachedResults = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cached_results",
		Help:      "Number of solve results currently held in the cache",
	})

	// Validation Metrics
	m.validationRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "validation_requests_total",
			Help:      "Total number of roster validation requests by outcome",
		},
		[]string{"outcome"},
	)

	// Operational Health Metrics - System stability indicators
	m.activeSolves = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_solves",
		Help:      "Number of balancing runs currently in flight (capacity indicator)",
	})

	// HTTP Performance Metrics - User experience indicators
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds (user experience)",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Enhanced Error Metrics - Detailed error tracking
	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total number of errors by component",
		},
		[]string{"component", "error_type"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_type_total",
			Help:      "Total number of errors by type",
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "error_latency_milliseconds",
			Help:      "Latency of operations that resulted in errors",
			Buckets:   m.histogramBuckets,
		},
		[]string{"component", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordSolveSuccess increments the solve counter and records duration.
func RecordSolveSuccess(durationMs float64) {
	globalManager.solvesTotal.Inc()
	globalManager.solveDuration.Observe(durationMs)
}

// RecordSolveFailure increments the failure counter for a reason label.
func RecordSolveFailure(reason string) {
	globalManager.solveFailures.WithLabelValues(reason).Inc()
}

// RecordRosterSize records the size of a submitted roster.
func RecordRosterSize(size int) {
	globalManager.rosterSize.Observe(float64(size))
}

// RecordBenchSize records the bench size chosen by the structure plan.
func RecordBenchSize(size int) {
	globalManager.benchSize.Observe(float64(size))
}

// RecordStrategyBuild records a successful candidate build and its duration.
func RecordStrategyBuild(strategy string, durationMs float64) {
	globalManager.strategyBuilds.WithLabelValues(strategy).Inc()
	globalManager.strategyBuildDuration.WithLabelValues(strategy).Observe(durationMs)
}

// RecordStrategyFailure increments the failure counter for a strategy.
func RecordStrategyFailure(strategy string) {
	globalManager.strategyFailures.WithLabelValues(strategy).Inc()
}

// RecordStrategyWin increments the selection counter for a strategy.
func RecordStrategyWin(strategy string) {
	globalManager.strategyWins.WithLabelValues(strategy).Inc()
}

// RecordRefineIterations records how many swaps the refiner applied.
func RecordRefineIterations(strategy string, iterations int) {
	globalManager.refineIterations.WithLabelValues(strategy).Observe(float64(iterations))
}

// RecordFinalScore publishes the quality of the selected partition.
func RecordFinalScore(score, skillGap float64) {
	globalManager.lastScore.Set(score)
	globalManager.lastSkillGap.Set(skillGap)
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// UpdateCachedResults sets the number of results held in the cache.
func UpdateCachedResults(count int) {
	globalManager.cachedResults.Set(float64(count))
}

// RecordValidation increments the validation counter for an outcome.
func RecordValidation(valid bool) {
	outcome := "valid"
	if !valid {
		outcome = "invalid"
	}
	globalManager.validationRequests.WithLabelValues(outcome).Inc()
}

// IncActiveSolves increments the in-flight solve gauge.
func IncActiveSolves() {
	globalManager.activeSolves.Inc()
}

// DecActiveSolves decrements the in-flight solve gauge.
func DecActiveSolves() {
	globalManager.activeSolves.Dec()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Enhanced Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
