package providers

import (
	"reviewreminder/internal/models"
	"reviewreminder/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncUsesRecorded()
	IncVersionResets()
	IncEvaluations(eligible bool)
	IncPromptsPresented()
	IncResponses(kind models.ActionKind)
	SetNetworkState(state models.NetworkState)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	usesRecorded        prometheus.Counter
	versionResets       prometheus.Counter
	evaluations         *prometheus.CounterVec
	promptsPresented    prometheus.Counter
	responses           *prometheus.CounterVec
	networkState        prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncUsesRecorded() {
	m.usesRecorded.Inc()
}

func (m *MetricsProvider) IncVersionResets() {
	m.versionResets.Inc()
}

func (m *MetricsProvider) IncEvaluations(eligible bool) {
	result := "suppressed"
	if eligible {
		result = "eligible"
	}
	m.evaluations.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) IncPromptsPresented() {
	m.promptsPresented.Inc()
}

func (m *MetricsProvider) IncResponses(kind models.ActionKind) {
	m.responses.WithLabelValues(string(kind)).Inc()
}

// SetNetworkState exports the state as its enum value: 0 unknown, 1 online, 2 offline.
func (m *MetricsProvider) SetNetworkState(state models.NetworkState) {
	m.networkState.Set(float64(state))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rr_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rr_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rr_settings_cache_hits_total",
			Help: "Total number of settings cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rr_settings_cache_misses_total",
			Help: "Total number of settings cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rr_store_flush_duration_seconds",
			Help:    "Duration of settings store flushes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		usesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rr_uses_recorded_total",
			Help: "Total number of recorded app uses",
		}),

		versionResets: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rr_version_resets_total",
			Help: "Total number of counter resets caused by a version change",
		}),

		evaluations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rr_evaluations_total",
			Help: "Total number of eligibility evaluations by result",
		}, []string{"result"}),

		promptsPresented: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rr_prompts_presented_total",
			Help: "Total number of presentation requests",
		}),

		responses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rr_responses_total",
			Help: "Total number of user responses by action kind",
		}, []string{"kind"}),

		networkState: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "rr_network_state",
			Help: "Current network state (0 unknown, 1 online, 2 offline)",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncUsesRecorded()                                 {}
func (n *noopMetrics) IncVersionResets()                                {}
func (n *noopMetrics) IncEvaluations(_ bool)                            {}
func (n *noopMetrics) IncPromptsPresented()                             {}
func (n *noopMetrics) IncResponses(_ models.ActionKind)                 {}
func (n *noopMetrics) SetNetworkState(_ models.NetworkState)            {}
