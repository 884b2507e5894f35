package services

import (
	"reviewreminder/internal/models"
	"reviewreminder/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newMonitor() (*ReachabilityMonitor, *testutil.MockReachability, *testutil.MockMetrics) {
	provider := testutil.NewMockReachability()
	metrics := testutil.NewMockMetrics()
	return NewReachabilityMonitor(provider, &testutil.MockLogger{}, metrics), provider, metrics
}

func TestReachabilityMonitor_StartsUnknown(t *testing.T) {
	m, _, _ := newMonitor()
	assert.Equal(t, models.NetworkUnknown, m.State())
}

func TestReachabilityMonitor_Transitions(t *testing.T) {
	m, provider, metrics := newMonitor()

	known := 0
	var changes []models.NetworkState
	m.Start(func() { known++ }, func(s models.NetworkState) { changes = append(changes, s) })

	provider.Push(models.NetworkOnline)
	assert.Equal(t, models.NetworkOnline, m.State())
	assert.Equal(t, 1, known)

	provider.Push(models.NetworkOnline)
	assert.Equal(t, 1, known, "repeated state is ignored")

	provider.Push(models.NetworkOffline)
	assert.Equal(t, models.NetworkOffline, m.State())
	assert.Equal(t, 1, known, "known to known is not a first transition")

	assert.Equal(t, []models.NetworkState{models.NetworkOnline, models.NetworkOffline}, changes)
	assert.Equal(t, changes, metrics.NetworkStates)
}

func TestReachabilityMonitor_NeverReturnsToUnknown(t *testing.T) {
	m, provider, metrics := newMonitor()

	known := 0
	var changes []models.NetworkState
	m.Start(func() { known++ }, func(s models.NetworkState) { changes = append(changes, s) })

	provider.Push(models.NetworkOnline)
	provider.Push(models.NetworkUnknown)
	assert.Equal(t, models.NetworkOnline, m.State())

	provider.Push(models.NetworkOffline)
	provider.Push(models.NetworkUnknown)
	provider.Push(models.NetworkOnline)

	assert.Equal(t, 1, known)
	assert.Equal(t, []models.NetworkState{models.NetworkOnline, models.NetworkOffline, models.NetworkOnline}, changes)
	assert.Equal(t, changes, metrics.NetworkStates)
}

func TestReachabilityMonitor_StartIsIdempotent(t *testing.T) {
	m, provider, _ := newMonitor()

	m.Start(nil, nil)
	m.Start(nil, nil)
	assert.Equal(t, 1, provider.Subscribers())
}

func TestReachabilityMonitor_Stop(t *testing.T) {
	m, provider, _ := newMonitor()
	known := 0
	m.Start(func() { known++ }, nil)

	m.Stop()
	m.Stop()
	assert.Equal(t, 0, provider.Subscribers())
	assert.Equal(t, 1, provider.Unsubscribed)

	provider.Push(models.NetworkOnline)
	assert.Equal(t, models.NetworkUnknown, m.State())
	assert.Zero(t, known)
}

func TestReachabilityMonitor_StopBeforeStart(t *testing.T) {
	m, _, _ := newMonitor()
	assert.NotPanics(t, m.Stop)
}
