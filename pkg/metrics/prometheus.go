// Package metrics provides Prometheus metrics for the GigMatch matching engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the matching engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Command processing metrics
	commandsProcessed *prometheus.CounterVec
	commandFailures   *prometheus.CounterVec
	commandDuration   prometheus.Histogram

	// Marketplace metrics
	jobsMatched   prometheus.Counter
	jobsCompleted prometheus.Counter
	jobsCancelled *prometheus.CounterVec
	bansTotal     prometheus.Counter

	// Population gauges
	customersTotal   prometheus.Gauge
	freelancersTotal prometheus.Gauge
	queueDepth       *prometheus.GaugeVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gigmatch",
		subsystem:        "matching",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.commandsProcessed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "commands_processed_total",
		Help:      "Total number of commands processed, by operation",
	}, []string{"operation"})

	m.commandFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "command_failures_total",
		Help:      "Total number of rejected or malformed commands, by operation",
	}, []string{"operation"})

	m.commandDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "command_duration_milliseconds",
		Help:      "Histogram of command processing duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.jobsMatched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "jobs_matched_total",
		Help:      "Total number of freelancers employed via matching or direct hire",
	})

	m.jobsCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "jobs_completed_total",
		Help:      "Total number of jobs completed and rated",
	})

	m.jobsCancelled = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "jobs_cancelled_total",
		Help:      "Total number of cancelled jobs, by initiating side",
	}, []string{"by"})

	m.bansTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "freelancers_banned_total",
		Help:      "Total number of freelancers banned by the platform",
	})

	m.customersTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "customers_total",
		Help:      "Current number of registered customers",
	})

	m.freelancersTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "freelancers_total",
		Help:      "Current number of registered freelancers",
	})

	m.queueDepth = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_depth",
		Help:      "Current number of available freelancers per service queue",
	}, []string{"service"})
}

// Handler returns an HTTP handler serving the manager's registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package-level helpers operating on the global manager.

// RecordCommand increments the processed counter for an operation.
func RecordCommand(operation string) {
	if globalManager.enabled {
		globalManager.commandsProcessed.WithLabelValues(operation).Inc()
	}
}

// RecordCommandFailure increments the failure counter for an operation.
func RecordCommandFailure(operation string) {
	if globalManager.enabled {
		globalManager.commandFailures.WithLabelValues(operation).Inc()
	}
}

// RecordCommandDuration records a command processing duration in milliseconds.
func RecordCommandDuration(ms float64) {
	if globalManager.enabled {
		globalManager.commandDuration.Observe(ms)
	}
}

// RecordJobMatched increments the matched-jobs counter.
func RecordJobMatched() {
	if globalManager.enabled {
		globalManager.jobsMatched.Inc()
	}
}

// RecordJobCompleted increments the completed-jobs counter.
func RecordJobCompleted() {
	if globalManager.enabled {
		globalManager.jobsCompleted.Inc()
	}
}

// RecordJobCancelled increments the cancelled-jobs counter for a side
// ("customer" or "freelancer").
func RecordJobCancelled(by string) {
	if globalManager.enabled {
		globalManager.jobsCancelled.WithLabelValues(by).Inc()
	}
}

// RecordBan increments the banned-freelancers counter.
func RecordBan() {
	if globalManager.enabled {
		globalManager.bansTotal.Inc()
	}
}

// UpdateCustomersTotal sets the registered-customers gauge.
func UpdateCustomersTotal(n int) {
	if globalManager.enabled {
		globalManager.customersTotal.Set(float64(n))
	}
}

// UpdateFreelancersTotal sets the registered-freelancers gauge.
func UpdateFreelancersTotal(n int) {
	if globalManager.enabled {
		globalManager.freelancersTotal.Set(float64(n))
	}
}

// UpdateQueueDepth sets the per-service queue depth gauge.
func UpdateQueueDepth(service string, n int) {
	if globalManager.enabled {
		globalManager.queueDepth.WithLabelValues(service).Set(float64(n))
	}
}

// Handler returns the HTTP handler of the global manager.
func Handler() http.Handler {
	return globalManager.Handler()
}
