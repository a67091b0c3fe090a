// Package metrics provides Prometheus metrics for the studyscore service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the studyscore service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Prediction metrics
	predictions       *prometheus.CounterVec
	predictionLatency *prometheus.HistogramVec
	storeErrors       prometheus.Counter
	studentsTotal     prometheus.Gauge

	// Dataset metrics
	datasetRows    prometheus.Gauge
	datasetColumns prometheus.Gauge

	// Dashboard metrics
	uiActions          *prometheus.CounterVec
	chartRenders       *prometheus.CounterVec
	chartRenderLatency prometheus.Histogram
	chartOverlays      *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "studyscore",
		subsystem:        "server",
		histogramBuckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	})
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	m.predictions = m.counterVec("predictions_total",
		"Total number of score predictions by model type and outcome", "model_type", "outcome")
	m.predictionLatency = m.histogramVec("prediction_latency_milliseconds",
		"Prediction latency in milliseconds, including persistence", m.histogramBuckets, "model_type")
	m.storeErrors = m.counter("store_errors_total", "Total number of student store failures")
	m.studentsTotal = m.gauge("students_total", "Number of persisted student predictions")

	m.datasetRows = m.gauge("dataset_rows", "Number of rows in the loaded dataset")
	m.datasetColumns = m.gauge("dataset_columns", "Number of columns in the loaded dataset")

	m.uiActions = m.counterVec("ui_actions_total",
		"Dashboard action state transitions by action and state", "action", "state")
	m.chartRenders = m.counterVec("chart_renders_total",
		"Chart renders by chart type and outcome", "chart_type", "outcome")
	m.chartRenderLatency = m.histogram("chart_render_latency_milliseconds",
		"Chart update latency in milliseconds (fetch, shape and draw)", m.histogramBuckets)
	m.chartOverlays = m.counterVec("chart_overlays_total",
		"Regression overlays drawn by model type", "model_type")

	m.httpRequests = m.counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.histogramBuckets, "endpoint", "method", "status_code")

	m.errorRateByType = m.counterVec("errors_by_type_total",
		"Total number of errors by type and severity", "error_type", "severity")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total",
		"Total number of errors by endpoint", "endpoint", "method", "error_type")
	m.errorLatency = m.histogramVec("error_latency_milliseconds",
		"Latency of failed operations in milliseconds", m.histogramBuckets, "component", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// RecordPrediction counts a prediction outcome ("success" or "error").
func RecordPrediction(modelType, outcome string) {
	globalManager.predictions.WithLabelValues(modelType, outcome).Inc()
}

// RecordPredictionLatency records prediction latency in milliseconds.
func RecordPredictionLatency(modelType string, latencyMs float64) {
	globalManager.predictionLatency.WithLabelValues(modelType).Observe(latencyMs)
}

// RecordStoreError increments the student store error counter.
func RecordStoreError() {
	globalManager.storeErrors.Inc()
}

// UpdateStudentsTotal sets the number of persisted students.
func UpdateStudentsTotal(count int) {
	globalManager.studentsTotal.Set(float64(count))
}

// UpdateDatasetShape sets the dataset row and column gauges.
func UpdateDatasetShape(rows, columns int) {
	globalManager.datasetRows.Set(float64(rows))
	globalManager.datasetColumns.Set(float64(columns))
}

// RecordUIState counts a dashboard action entering a state.
func RecordUIState(action, state string) {
	globalManager.uiActions.WithLabelValues(action, state).Inc()
}

// RecordChartRender counts a chart render outcome.
func RecordChartRender(chartType, outcome string) {
	globalManager.chartRenders.WithLabelValues(chartType, outcome).Inc()
}

// RecordChartRenderLatency records chart update latency in milliseconds.
func RecordChartRenderLatency(latencyMs float64) {
	globalManager.chartRenderLatency.Observe(latencyMs)
}

// RecordChartOverlay counts a regression overlay drawn for modelType.
func RecordChartOverlay(modelType string) {
	globalManager.chartOverlays.WithLabelValues(modelType).Inc()
}

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType increments error counter by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint increments error counter by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records latency for error operations.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage updates system memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom registry for metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
