package providers

import (
	"context"
	"net/http"
	"reviewreminder/internal/models"
	"reviewreminder/internal/structures"
	"sync"
	"time"
)

// ReachabilityProvider fans connectivity states out to subscribers. States
// arrive either from Probe (an HTTP HEAD against the probe URL) or from Push.
type ReachabilityProvider struct {
	mu          sync.Mutex
	subscribers map[int]func(models.NetworkState)
	nextID      int
	client      *http.Client
	probeURL    string
	logger      Logger
}

func NewReachabilityProvider(conf *structures.Config, logger Logger) *ReachabilityProvider {
	timeout := conf.Reachability.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ReachabilityProvider{
		subscribers: make(map[int]func(models.NetworkState)),
		client:      &http.Client{Timeout: timeout},
		probeURL:    conf.Reachability.ProbeURL,
		logger:      logger,
	}
}

func (rp *ReachabilityProvider) Subscribe(callback func(models.NetworkState)) func() {
	rp.mu.Lock()
	id := rp.nextID
	rp.nextID++
	rp.subscribers[id] = callback
	rp.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			rp.mu.Lock()
			delete(rp.subscribers, id)
			rp.mu.Unlock()
		})
	}
}

func (rp *ReachabilityProvider) Push(state models.NetworkState) {
	rp.mu.Lock()
	callbacks := make([]func(models.NetworkState), 0, len(rp.subscribers))
	for _, cb := range rp.subscribers {
		callbacks = append(callbacks, cb)
	}
	rp.mu.Unlock()

	for _, cb := range callbacks {
		cb(state)
	}
}

// Probe checks the probe URL and pushes the result. Any HTTP answer counts as online.
func (rp *ReachabilityProvider) Probe(ctx context.Context) models.NetworkState {
	if rp.probeURL == "" {
		return models.NetworkUnknown
	}

	state := models.NetworkOffline
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rp.probeURL, nil)
	if err == nil {
		resp, doErr := rp.client.Do(req)
		if doErr == nil {
			_ = resp.Body.Close()
			state = models.NetworkOnline
		} else {
			rp.logger.Debugf(TypeReachability, "Probe %s failed: %s", rp.probeURL, doErr)
		}
	} else {
		rp.logger.Warnf(TypeReachability, "Invalid probe url %s: %s", rp.probeURL, err)
	}

	rp.Push(state)
	return state
}
