// Package metrics provides Prometheus metrics for the rinkscout engine.
package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the engine's Prometheus collectors.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Evaluation metrics
	evaluations       *prometheus.CounterVec
	evaluationLatency prometheus.Histogram
	rosterBatchSize   prometheus.Histogram
	duplicatePlayers  prometheus.Counter

	// Search metrics
	searches           *prometheus.CounterVec
	candidatesReturned prometheus.Histogram
	fallbackSearches   prometheus.Counter

	// Benchmark metrics
	benchmarkBuilds  *prometheus.CounterVec
	benchmarkRoles   prometheus.Gauge
	benchmarkLatency prometheus.Histogram

	// Ranking store
	rankedPlayers prometheus.Gauge

	// Queue and worker metrics
	queueSize         prometheus.Gauge
	queueCapacity     prometheus.Gauge
	queueEnqueued     prometheus.Counter
	queueDequeued     prometheus.Counter
	queueEnqueueError prometheus.Counter
	workerCount       prometheus.Gauge
	workerActive      prometheus.Gauge
	workerLatency     prometheus.Histogram
	workerErrors      prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorsByComponent *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rinkscout",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: buckets,
	})
}

func (m *Manager) initializeMetrics() {
	m.evaluations = m.counterVec("evaluations_total", "Player evaluations by role and action", "role", "action")
	m.evaluationLatency = m.histogram("evaluation_latency_milliseconds", "Latency of a single player evaluation", m.histogramBuckets)
	m.rosterBatchSize = m.histogram("roster_batch_size", "Players per roster evaluation batch",
		prometheus.LinearBuckets(5, 5, 10))
	m.duplicatePlayers = m.counter("duplicate_players_total", "Repeated player records dropped from roster batches")

	m.searches = m.counterVec("candidate_searches_total", "Replacement searches by mode and outcome", "mode", "outcome")
	m.candidatesReturned = m.histogram("candidates_returned", "Candidates returned per search", []float64{0, 1, 2, 3, 4, 5})
	m.fallbackSearches = m.counter("fallback_searches_total", "Searches answered with development prospects")

	m.benchmarkBuilds = m.counterVec("benchmark_builds_total", "Benchmark table builds by outcome", "outcome")
	m.benchmarkRoles = m.gauge("benchmark_roles", "Roles covered by the current benchmark table")
	m.benchmarkLatency = m.histogram("benchmark_build_latency_milliseconds", "Benchmark build latency", m.histogramBuckets)

	m.rankedPlayers = m.gauge("ranked_players", "Players in the league ranking")

	m.queueSize = m.gauge("queue_size", "Current number of queued evaluation jobs")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum queue capacity")
	m.queueEnqueued = m.counter("queue_enqueue_total", "Evaluation jobs enqueued")
	m.queueDequeued = m.counter("queue_dequeue_total", "Evaluation jobs dequeued")
	m.queueEnqueueError = m.counter("queue_enqueue_errors_total", "Failed enqueues")
	m.workerCount = m.gauge("worker_count", "Configured evaluation workers")
	m.workerActive = m.gauge("worker_active_count", "Workers currently evaluating")
	m.workerLatency = m.histogram("worker_processing_latency_milliseconds", "Worker job latency", m.histogramBuckets)
	m.workerErrors = m.counter("worker_errors_total", "Failed worker jobs")

	m.httpRequests = promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "http_requests_total", Help: "Ops HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "http_request_duration_milliseconds", Help: "Ops HTTP request duration", Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = m.counterVec("errors_by_component_total", "Errors by component and type", "component", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap memory in use")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
}

// RecordEvaluation counts one evaluation and its latency.
func RecordEvaluation(role, action string, latencyMs float64) {
	globalManager.evaluations.WithLabelValues(role, action).Inc()
	globalManager.evaluationLatency.Observe(latencyMs)
}

// RecordRosterBatch records the size of a roster batch and its dropped duplicates.
func RecordRosterBatch(size, duplicates int) {
	globalManager.rosterBatchSize.Observe(float64(size))
	globalManager.duplicatePlayers.Add(float64(duplicates))
}

// RecordSearch records a candidate search.
func RecordSearch(mode, outcome string, returned int, fallback bool) {
	globalManager.searches.WithLabelValues(mode, outcome).Inc()
	globalManager.candidatesReturned.Observe(float64(returned))
	if fallback {
		globalManager.fallbackSearches.Inc()
	}
}

// RecordBenchmarkBuild records a benchmark build.
func RecordBenchmarkBuild(outcome string, roles int, latencyMs float64) {
	globalManager.benchmarkBuilds.WithLabelValues(outcome).Inc()
	globalManager.benchmarkLatency.Observe(latencyMs)
	if outcome == "ok" {
		globalManager.benchmarkRoles.Set(float64(roles))
	}
}

// UpdateRankedPlayers sets the ranking store size.
func UpdateRankedPlayers(count int) {
	globalManager.rankedPlayers.Set(float64(count))
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueError.Inc()
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// AddWorkerActive moves the active worker gauge by delta.
func AddWorkerActive(delta int) {
	globalManager.workerActive.Add(float64(delta))
}

// RecordWorkerProcessingLatency records worker job latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordHTTPRequest records an ops HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMetrics samples memory and goroutine gauges.
func UpdateSystemMetrics() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	globalManager.systemMemoryUsage.Set(float64(ms.HeapInuse))
	globalManager.systemGoroutineCount.Set(float64(runtime.NumGoroutine()))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
