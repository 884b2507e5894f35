package services

import (
	"reviewreminder/internal/models"
	"reviewreminder/internal/providers"
	"reviewreminder/internal/services/interfaces"
	"reviewreminder/internal/structures"
	"sync"
)

type UsageTrackerInterface interface {
	RecordUse(version string) (models.UsageSnapshot, error)
	Snapshot() models.UsageSnapshot
	Reset(version string) (models.UsageSnapshot, error)
	MarkRated()
	MarkDeclined()
	MarkRemindLater()
}

// UsageTracker owns the per-version counters in the settings store.
type UsageTracker struct {
	mu      sync.Mutex
	store   interfaces.KeyValueStore
	clock   interfaces.Clock
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	prefix  string
}

func NewUsageTracker(conf *structures.Config, store interfaces.KeyValueStore, clock interfaces.Clock, logger providers.Logger, metrics providers.MetricsProviderInterface) UsageTrackerInterface {
	prefix := conf.Storage.KeyPrefix
	if prefix == "" {
		prefix = structures.DefaultKeyPrefix
	}
	return &UsageTracker{
		store:   store,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
		prefix:  prefix,
	}
}

func (t *UsageTracker) key(name string) string {
	return t.prefix + name
}

// RecordUse counts one use of version. A version other than the stored one,
// including a first run, starts a fresh trial period with useCount=1.
func (t *UsageTracker) RecordUse(version string) (models.UsageSnapshot, error) {
	if version == "" {
		return models.UsageSnapshot{}, ErrMissingMetadata
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	saved, ok := t.store.GetString(t.key(models.KeySavedVersion))
	t.logger.Debugf(providers.TypeSession, "Tracking version %s", version)

	if !ok || saved != version {
		if ok {
			t.logger.Infof(providers.TypeSession, "Version changed from %s to %s, counters reset", saved, version)
		} else {
			t.logger.Infof(providers.TypeSession, "First run of version %s", version)
		}
		snapshot := t.resetLocked(version)
		t.metrics.IncVersionResets()
		t.metrics.IncUsesRecorded()
		return snapshot, nil
	}

	now := t.clock.Now()
	firstUse := models.EpochToTime(t.getDouble(models.KeyFirstUseDate))
	if firstUse.IsZero() {
		firstUse = now
		t.store.SetDouble(t.key(models.KeyFirstUseDate), models.TimeToEpoch(now))
	}

	useCount, _ := t.store.GetInt(t.key(models.KeyUseCount))
	useCount++
	t.store.SetInt(t.key(models.KeyUseCount), useCount)
	t.flushLocked()

	t.logger.Debugf(providers.TypeSession, "Use count: %d", useCount)
	t.metrics.IncUsesRecorded()

	rated, _ := t.store.GetBool(t.key(models.KeyRatedCurrentVersion))
	declined, _ := t.store.GetBool(t.key(models.KeyDeclinedToRate))
	return models.UsageSnapshot{
		Version:             version,
		UseCount:            useCount,
		FirstUseDate:        firstUse,
		RatedCurrentVersion: rated,
		DeclinedToRate:      declined,
		ReminderRequestDate: models.EpochToTime(t.getDouble(models.KeyReminderRequestDate)),
	}, nil
}

// Reset forces a fresh trial period for version.
func (t *UsageTracker) Reset(version string) (models.UsageSnapshot, error) {
	if version == "" {
		return models.UsageSnapshot{}, ErrMissingMetadata
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resetLocked(version), nil
}

func (t *UsageTracker) resetLocked(version string) models.UsageSnapshot {
	now := t.clock.Now()
	t.store.SetString(t.key(models.KeySavedVersion), version)
	t.store.SetInt(t.key(models.KeyUseCount), 1)
	t.store.SetDouble(t.key(models.KeyFirstUseDate), models.TimeToEpoch(now))
	t.store.SetBool(t.key(models.KeyRatedCurrentVersion), false)
	t.store.SetBool(t.key(models.KeyDeclinedToRate), false)
	t.store.SetDouble(t.key(models.KeyReminderRequestDate), 0)
	t.flushLocked()

	return models.UsageSnapshot{
		Version:      version,
		UseCount:     1,
		FirstUseDate: now,
	}
}

// Snapshot reads the counters without changing them.
func (t *UsageTracker) Snapshot() models.UsageSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	version, _ := t.store.GetString(t.key(models.KeySavedVersion))
	useCount, _ := t.store.GetInt(t.key(models.KeyUseCount))
	rated, _ := t.store.GetBool(t.key(models.KeyRatedCurrentVersion))
	declined, _ := t.store.GetBool(t.key(models.KeyDeclinedToRate))
	return models.UsageSnapshot{
		Version:             version,
		UseCount:            useCount,
		FirstUseDate:        models.EpochToTime(t.getDouble(models.KeyFirstUseDate)),
		RatedCurrentVersion: rated,
		DeclinedToRate:      declined,
		ReminderRequestDate: models.EpochToTime(t.getDouble(models.KeyReminderRequestDate)),
	}
}

func (t *UsageTracker) MarkRated() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.store.SetBool(t.key(models.KeyRatedCurrentVersion), true)
	t.flushLocked()
}

func (t *UsageTracker) MarkDeclined() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.store.SetBool(t.key(models.KeyDeclinedToRate), true)
	t.flushLocked()
}

func (t *UsageTracker) MarkRemindLater() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.store.SetDouble(t.key(models.KeyReminderRequestDate), models.TimeToEpoch(t.clock.Now()))
	t.flushLocked()
}

func (t *UsageTracker) getDouble(name string) float64 {
	v, _ := t.store.GetDouble(t.key(name))
	return v
}

// flushLocked is best effort: a failed flush keeps the values in the store for the next one.
func (t *UsageTracker) flushLocked() {
	if err := t.store.Flush(); err != nil {
		t.logger.Errorf(providers.TypeSession, "Settings flush failed: %s", err)
	}
}
