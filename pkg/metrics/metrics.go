// Package metrics provides Prometheus metrics for the arena hackathon service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace string
	registry  prometheus.Registerer

	// Business metrics.
	scoresRecorded    prometheus.Counter
	scoresDuplicate   prometheus.Counter
	phaseViolations   *prometheus.CounterVec
	weightRejections  prometheus.Counter
	aggregationRuns   prometheus.Counter
	aggregationTeams  prometheus.Gauge
	aggregationTimeMS prometheus.Histogram

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Identity event pipeline metrics.
	eventsQueued    prometheus.Counter
	eventsDuplicate prometheus.Counter
	eventsDropped   prometheus.Counter
	judgesPruned    prometheus.Counter
	queueSize       prometheus.Gauge
	workerCount     prometheus.Gauge

	// Upstream collaborator metrics.
	upstreamErrors *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "arena",
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initialize()
	return m
}

func (m *Manager) initialize() {
	factory := promauto.With(m.registry)

	m.scoresRecorded = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "scores_recorded_total",
		Help:      "Number of team scores accepted.",
	})
	m.scoresDuplicate = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "scores_duplicate_total",
		Help:      "Number of score writes rejected as duplicates.",
	})
	m.phaseViolations = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "phase_violations_total",
		Help:      "Mutations rejected because the hackathon phase disallows them.",
	}, []string{"action"})
	m.weightRejections = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "criterion_weight_rejections_total",
		Help:      "Criterion writes rejected by the weight-sum invariant.",
	})
	m.aggregationRuns = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "aggregation_runs_total",
		Help:      "Final-score aggregation runs.",
	})
	m.aggregationTeams = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "aggregation_teams",
		Help:      "Teams ranked by the most recent aggregation run.",
	})
	m.aggregationTimeMS = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "aggregation_duration_ms",
		Help:      "Final-score aggregation latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"endpoint", "method", "status"})

	m.eventsQueued = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "identity_events_queued_total",
		Help:      "Identity events accepted onto the queue.",
	})
	m.eventsDuplicate = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "identity_events_duplicate_total",
		Help:      "Identity events dropped as already seen.",
	})
	m.eventsDropped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "identity_events_dropped_total",
		Help:      "Identity events dropped due to backpressure.",
	})
	m.judgesPruned = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "judges_pruned_total",
		Help:      "Judge rows removed in response to identity events.",
	})
	m.queueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "event_queue_size",
		Help:      "Identity events waiting in the queue.",
	})
	m.workerCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "event_worker_count",
		Help:      "Workers consuming identity events.",
	})

	m.upstreamErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "upstream_errors_total",
		Help:      "Errors talking to external collaborators.",
	}, []string{"service"})
}

// Package-level helpers delegating to the global manager.

func RecordScore()               { globalManager.scoresRecorded.Inc() }
func RecordDuplicateScore()      { globalManager.scoresDuplicate.Inc() }
func RecordWeightRejection()     { globalManager.weightRejections.Inc() }
func RecordAggregationRun()      { globalManager.aggregationRuns.Inc() }
func UpdateAggregationTeams(n int) {
	globalManager.aggregationTeams.Set(float64(n))
}

func RecordPhaseViolation(action string) {
	globalManager.phaseViolations.WithLabelValues(action).Inc()
}

func RecordAggregationDuration(ms float64) {
	globalManager.aggregationTimeMS.Observe(ms)
}

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

func RecordEventQueued()       { globalManager.eventsQueued.Inc() }
func RecordEventDuplicate()    { globalManager.eventsDuplicate.Inc() }
func RecordEventDropped()      { globalManager.eventsDropped.Inc() }
func RecordJudgePruned()       { globalManager.judgesPruned.Inc() }
func UpdateQueueSize(size int) { globalManager.queueSize.Set(float64(size)) }
func UpdateWorkerCount(n int)  { globalManager.workerCount.Set(float64(n)) }

func RecordUpstreamError(service string) {
	globalManager.upstreamErrors.WithLabelValues(service).Inc()
}

// GetRegistry exposes the custom registry for the /metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
