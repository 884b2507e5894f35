package services

import (
	"reviewreminder/internal/models"
	"reviewreminder/internal/providers"
	"reviewreminder/internal/services/interfaces"
	"sync"

	"go.uber.org/atomic"
)

// ReachabilityMonitor owns the in-memory network state. It starts Unknown
// every run and is never persisted.
type ReachabilityMonitor struct {
	provider interfaces.ReachabilityProvider
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface

	state *atomic.Int32

	mu           sync.Mutex
	unsubscribe  func()
	onFirstKnown func()
	onChange     func(models.NetworkState)
}

func NewReachabilityMonitor(provider interfaces.ReachabilityProvider, logger providers.Logger, metrics providers.MetricsProviderInterface) *ReachabilityMonitor {
	return &ReachabilityMonitor{
		provider: provider,
		logger:   logger,
		metrics:  metrics,
		state:    atomic.NewInt32(int32(models.NetworkUnknown)),
	}
}

// Start subscribes to the provider. onFirstKnown fires once, on the first
// Unknown -> known transition, onChange on every transition. A second Start
// is a no-op.
func (m *ReachabilityMonitor) Start(onFirstKnown func(), onChange func(models.NetworkState)) {
	m.mu.Lock()
	if m.unsubscribe != nil {
		m.mu.Unlock()
		return
	}
	m.onFirstKnown = onFirstKnown
	m.onChange = onChange
	m.unsubscribe = func() {}
	m.mu.Unlock()

	unsubscribe := m.provider.Subscribe(m.handle)

	m.mu.Lock()
	m.unsubscribe = unsubscribe
	m.mu.Unlock()
}

func (m *ReachabilityMonitor) State() models.NetworkState {
	return models.NetworkState(m.state.Load())
}

func (m *ReachabilityMonitor) handle(next models.NetworkState) {
	m.mu.Lock()
	prev := m.State()
	if prev == next {
		m.mu.Unlock()
		return
	}
	// Once known the state only moves between Online and Offline.
	if prev.Known() && !next.Known() {
		m.mu.Unlock()
		m.logger.Debugf(providers.TypeReachability, "Ignoring %s after %s", next, prev)
		return
	}
	m.state.Store(int32(next))
	onFirstKnown, onChange := m.onFirstKnown, m.onChange
	m.mu.Unlock()

	m.logger.Infof(providers.TypeReachability, "Network status changed to %s", next)
	m.metrics.SetNetworkState(next)

	if prev == models.NetworkUnknown && next.Known() && onFirstKnown != nil {
		onFirstKnown()
	}
	if onChange != nil {
		onChange(next)
	}
}

// Stop unsubscribes from the provider. Best effort, safe to call more than once.
func (m *ReachabilityMonitor) Stop() {
	m.mu.Lock()
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}
