package providers

import (
	"reviewreminder/internal/models"
	"reviewreminder/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(time.Millisecond)
	m.IncUsesRecorded()
	m.IncVersionResets()
	m.IncEvaluations(true)
	m.IncPromptsPresented()
	m.IncResponses(models.ActionRate)
	m.SetNetworkState(models.NetworkOnline)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	defer func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	defer func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)

	// These should not panic
	m.IncRequestsTotal("/state", 200)
	m.IncRequestsTotal("/state", 404)
	m.ObserveRequestDuration("/state", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(100 * time.Millisecond)
	m.IncUsesRecorded()
	m.IncEvaluations(false)
	m.IncEvaluations(true)
	m.IncResponses(models.ActionDecline)
	m.SetNetworkState(models.NetworkOffline)

	families, err := reg.Gather()
	assert.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				values[mf.GetName()] += c.GetValue()
			}
			if g := metric.GetGauge(); g != nil {
				values[mf.GetName()] = g.GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, values["rr_requests_total"])
	assert.Equal(t, 1.0, values["rr_uses_recorded_total"])
	assert.Equal(t, 2.0, values["rr_evaluations_total"])
	assert.Equal(t, 1.0, values["rr_responses_total"])
	assert.Equal(t, float64(models.NetworkOffline), values["rr_network_state"])
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
