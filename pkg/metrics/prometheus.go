package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Analysis
	analyses         prometheus.Counter
	analysisErrors   *prometheus.CounterVec
	eventsScanned    *prometheus.CounterVec
	invalidMinutes   prometheus.Counter
	teamDetection    *prometheus.CounterVec
	impactLabels     *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	sessionsActive   prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// Batch queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Batch workers
	workerActive            prometheus.Gauge
	workerProcessed         prometheus.Counter
	workerErrors            prometheus.Counter
	workerProcessingLatency prometheus.Histogram
}

var (
	// Custom registry to avoid default Go metrics.
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide metrics registry
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton behind the Record* helpers
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "cambios",
		subsystem:        "analysis",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
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
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: m.histogramBuckets,
	})
}

func (m *Manager) initializeMetrics() {
	m.analyses = m.counter("analyses_total", "Total number of report pages analyzed")
	m.analysisErrors = m.counterVec("analysis_errors_total", "Analyses rejected, by reason", "reason")
	m.eventsScanned = m.counterVec("events_scanned_total", "Events extracted from reports, by kind", "kind")
	m.invalidMinutes = m.counter("invalid_minutes_total", "Events whose minute could not be parsed")
	m.teamDetection = m.counterVec("team_detection_total", "Team detections, by winning strategy", "strategy")
	m.impactLabels = m.counterVec("impact_labels_total", "Substitution impact labels produced", "label")
	m.analysisDuration = m.histogram("analysis_duration_milliseconds", "Time spent scanning one document")
	m.sessionsActive = m.gauge("sessions_active", "Analysis sessions currently held in memory")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint and method",
		"endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "HTTP errors by endpoint",
		"endpoint", "method", "error_type")

	m.queueSize = m.gauge("queue_size", "Documents waiting in the batch queue")
	m.queueCapacity = m.gauge("queue_capacity", "Capacity of the batch queue")
	m.queueEnqueued = m.counter("queue_enqueued_total", "Documents enqueued")
	m.queueDequeued = m.counter("queue_dequeued_total", "Documents dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Documents rejected by a full or closed queue")

	m.workerActive = m.gauge("worker_active", "Batch workers currently analyzing a document")
	m.workerProcessed = m.counter("worker_processed_total", "Documents analyzed by batch workers")
	m.workerErrors = m.counter("worker_errors_total", "Documents batch workers failed to analyze")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds", "Per-document batch latency")
}

// RecordAnalysis counts one analyzed page and its duration.
func RecordAnalysis(durationMs float64) {
	globalManager.analyses.Inc()
	globalManager.analysisDuration.Observe(durationMs)
}

// RecordAnalysisError counts a rejected analysis.
func RecordAnalysisError(reason string) {
	globalManager.analysisErrors.WithLabelValues(reason).Inc()
}

// RecordEventsScanned adds n events of kind.
func RecordEventsScanned(kind string, n int) {
	globalManager.eventsScanned.WithLabelValues(kind).Add(float64(n))
}

// RecordInvalidMinutes adds n unparseable minutes.
func RecordInvalidMinutes(n int) {
	globalManager.invalidMinutes.Add(float64(n))
}

// RecordTeamDetection counts a detection by strategy.
func RecordTeamDetection(strategy string) {
	globalManager.teamDetection.WithLabelValues(strategy).Inc()
}

// RecordImpactLabel counts one produced label.
func RecordImpactLabel(label string) {
	globalManager.impactLabels.WithLabelValues(label).Inc()
}

// UpdateSessionsActive sets the in-memory session count.
func UpdateSessionsActive(count int) {
	globalManager.sessionsActive.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
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
	globalManager.queueEnqueueErrors.Inc()
}

// UpdateWorkerActiveCount sets the number of busy workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActive.Set(float64(count))
}

// RecordWorkerProcessed counts a document analyzed by a worker.
func RecordWorkerProcessed(latencyMs float64) {
	globalManager.workerProcessed.Inc()
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
