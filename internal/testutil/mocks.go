package testutil

import (
	"errors"
	"fmt"
	"reviewreminder/internal/models"
	"reviewreminder/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockStore implements interfaces.KeyValueStore on plain maps.
type MockStore struct {
	mu         sync.Mutex
	Values     map[string]interface{}
	FlushErr   error
	FlushCalls int
}

func NewMockStore() *MockStore {
	return &MockStore{Values: make(map[string]interface{})}
}

func (m *MockStore) get(key string) (interface{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Values[key]
	return v, ok
}

func (m *MockStore) set(key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Values[key] = value
}

func (m *MockStore) GetBool(key string) (bool, bool) {
	v, ok := m.get(key)
	b, isBool := v.(bool)
	return b, ok && isBool
}

func (m *MockStore) GetInt(key string) (int, bool) {
	v, ok := m.get(key)
	i, isInt := v.(int)
	return i, ok && isInt
}

func (m *MockStore) GetDouble(key string) (float64, bool) {
	v, ok := m.get(key)
	f, isFloat := v.(float64)
	return f, ok && isFloat
}

func (m *MockStore) GetString(key string) (string, bool) {
	v, ok := m.get(key)
	s, isString := v.(string)
	return s, ok && isString
}

func (m *MockStore) SetBool(key string, value bool)      { m.set(key, value) }
func (m *MockStore) SetInt(key string, value int)        { m.set(key, value) }
func (m *MockStore) SetDouble(key string, value float64) { m.set(key, value) }
func (m *MockStore) SetString(key string, value string)  { m.set(key, value) }

func (m *MockStore) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FlushCalls++
	return m.FlushErr
}

// MockPresenter implements interfaces.PresentationHost.
type MockPresenter struct {
	mu           sync.Mutex
	visible      bool
	Presented    []models.Prompt
	DismissCalls int
}

func (m *MockPresenter) Present(title, message string, actions []models.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = true
	m.Presented = append(m.Presented, models.Prompt{Title: title, Message: message, Actions: actions})
}

func (m *MockPresenter) Dismiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = false
	m.DismissCalls++
}

func (m *MockPresenter) IsVisible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

// SetVisible simulates a prompt that the host shows or hides on its own.
func (m *MockPresenter) SetVisible(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = v
}

func (m *MockPresenter) PresentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Presented)
}

func (m *MockPresenter) Last() (models.Prompt, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Presented) == 0 {
		return models.Prompt{}, false
	}
	return m.Presented[len(m.Presented)-1], true
}

// MockLinkOpener implements interfaces.StoreLinkOpener.
type MockLinkOpener struct {
	mu     sync.Mutex
	Opened []string
	Err    error
}

func (m *MockLinkOpener) OpenReviewPage(appID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if appID == "" {
		return errors.New("empty app id")
	}
	m.Opened = append(m.Opened, appID)
	return m.Err
}

func (m *MockLinkOpener) OpenedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Opened)
}

// MockReachability implements interfaces.ReachabilityProvider; Push drives subscribers.
type MockReachability struct {
	mu           sync.Mutex
	callbacks    map[int]func(models.NetworkState)
	next         int
	Unsubscribed int
}

func NewMockReachability() *MockReachability {
	return &MockReachability{callbacks: make(map[int]func(models.NetworkState))}
}

func (m *MockReachability) Subscribe(callback func(models.NetworkState)) func() {
	m.mu.Lock()
	id := m.next
	m.next++
	m.callbacks[id] = callback
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.callbacks[id]; ok {
			delete(m.callbacks, id)
			m.Unsubscribed++
		}
	}
}

func (m *MockReachability) Push(state models.NetworkState) {
	m.mu.Lock()
	callbacks := make([]func(models.NetworkState), 0, len(m.callbacks))
	for _, cb := range m.callbacks {
		callbacks = append(callbacks, cb)
	}
	m.mu.Unlock()

	for _, cb := range callbacks {
		cb(state)
	}
}

func (m *MockReachability) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.callbacks)
}

// MockMetadata implements interfaces.AppMetadataProvider with English defaults.
// HostStrings is consulted only when the caller asks for the main bundle.
type MockMetadata struct {
	mu          sync.Mutex
	Versions    map[string]string
	AppName     string
	HostStrings map[string]string
}

func NewMockMetadata(version string) *MockMetadata {
	return &MockMetadata{
		Versions: map[string]string{"CFBundleVersion": version},
		AppName:  "Notes",
	}
}

func (m *MockMetadata) SetVersion(selector, version string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Versions[selector] = version
}

func (m *MockMetadata) CurrentVersion(selector string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Versions[selector]
}

func (m *MockMetadata) CurrentAppName() string {
	return m.AppName
}

func (m *MockMetadata) LocalizedString(key, appName string, useMainBundle bool) string {
	if custom, ok := m.HostStrings[key]; ok && useMainBundle {
		return custom
	}
	switch key {
	case providers.StringRateTitle, providers.StringMessage:
		return fmt.Sprintf(key, appName)
	}
	return key
}

// MockClock implements interfaces.Clock with a settable time.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu               sync.Mutex
	Requests         map[string]int
	CacheHits        int
	CacheMisses      int
	Persistences     int
	UsesRecorded     int
	VersionResets    int
	Evaluations      map[bool]int
	PromptsPresented int
	Responses        map[models.ActionKind]int
	NetworkStates    []models.NetworkState
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Requests:    make(map[string]int),
		Evaluations: make(map[bool]int),
		Responses:   make(map[models.ActionKind]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests[endpoint]++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persistences++
}
func (m *MockMetrics) IncUsesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UsesRecorded++
}
func (m *MockMetrics) IncVersionResets() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VersionResets++
}
func (m *MockMetrics) IncEvaluations(eligible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Evaluations[eligible]++
}
func (m *MockMetrics) IncPromptsPresented() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PromptsPresented++
}
func (m *MockMetrics) IncResponses(kind models.ActionKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[kind]++
}
func (m *MockMetrics) SetNetworkState(state models.NetworkState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NetworkStates = append(m.NetworkStates, state)
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {
	m.Closed = true
}
