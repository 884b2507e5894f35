package services

import (
	"errors"
	"reviewreminder/internal/models"
	"reviewreminder/internal/structures"
	"reviewreminder/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

type trackerFixture struct {
	tracker *UsageTracker
	store   *testutil.MockStore
	clock   *testutil.MockClock
	logger  *testutil.MockLogger
	metrics *testutil.MockMetrics
}

func newTrackerFixture() *trackerFixture {
	f := &trackerFixture{
		store:   testutil.NewMockStore(),
		clock:   testutil.NewMockClock(baseTime),
		logger:  &testutil.MockLogger{},
		metrics: testutil.NewMockMetrics(),
	}
	f.tracker = NewUsageTracker(&structures.Config{}, f.store, f.clock, f.logger, f.metrics).(*UsageTracker)
	return f
}

func key(name string) string {
	return structures.DefaultKeyPrefix + name
}

func TestRecordUse_FirstRun(t *testing.T) {
	f := newTrackerFixture()

	snap, err := f.tracker.RecordUse("1.0")
	require.NoError(t, err)

	assert.Equal(t, "1.0", snap.Version)
	assert.Equal(t, 1, snap.UseCount)
	assert.True(t, snap.FirstUseDate.Equal(baseTime))
	assert.False(t, snap.RatedCurrentVersion)
	assert.False(t, snap.DeclinedToRate)
	assert.False(t, snap.HasReminderRequest())

	saved, ok := f.store.GetString(key(models.KeySavedVersion))
	require.True(t, ok)
	assert.Equal(t, "1.0", saved)
	assert.Equal(t, 1, f.metrics.VersionResets)
	assert.Equal(t, 1, f.metrics.UsesRecorded)
	assert.Equal(t, 1, f.store.FlushCalls)
}

func TestRecordUse_SameVersionIncrements(t *testing.T) {
	f := newTrackerFixture()

	_, err := f.tracker.RecordUse("1.0")
	require.NoError(t, err)
	f.clock.Advance(2 * time.Hour)

	snap, err := f.tracker.RecordUse("1.0")
	require.NoError(t, err)
	assert.Equal(t, 2, snap.UseCount)
	assert.True(t, snap.FirstUseDate.Equal(baseTime), "first use date must not move")

	snap, err = f.tracker.RecordUse("1.0")
	require.NoError(t, err)
	assert.Equal(t, 3, snap.UseCount)
	assert.Equal(t, 1, f.metrics.VersionResets)
	assert.Equal(t, 3, f.metrics.UsesRecorded)
}

func TestRecordUse_VersionChangeResetsEverything(t *testing.T) {
	f := newTrackerFixture()

	_, err := f.tracker.RecordUse("1.0")
	require.NoError(t, err)
	_, _ = f.tracker.RecordUse("1.0")
	f.tracker.MarkRated()
	f.tracker.MarkDeclined()
	f.tracker.MarkRemindLater()

	f.clock.Advance(48 * time.Hour)
	snap, err := f.tracker.RecordUse("1.1")
	require.NoError(t, err)

	assert.Equal(t, "1.1", snap.Version)
	assert.Equal(t, 1, snap.UseCount)
	assert.True(t, snap.FirstUseDate.Equal(baseTime.Add(48*time.Hour)))
	assert.False(t, snap.RatedCurrentVersion)
	assert.False(t, snap.DeclinedToRate)
	assert.False(t, snap.HasReminderRequest())

	stored := f.tracker.Snapshot()
	assert.Equal(t, snap.UseCount, stored.UseCount)
	assert.True(t, stored.FirstUseDate.Equal(snap.FirstUseDate))
	assert.False(t, stored.RatedCurrentVersion)
	assert.False(t, stored.HasReminderRequest())
	assert.Equal(t, 2, f.metrics.VersionResets)
}

func TestRecordUse_MissingFirstUseDateIsFilledIn(t *testing.T) {
	f := newTrackerFixture()
	f.store.SetString(key(models.KeySavedVersion), "1.0")
	f.store.SetInt(key(models.KeyUseCount), 4)

	snap, err := f.tracker.RecordUse("1.0")
	require.NoError(t, err)

	assert.Equal(t, 5, snap.UseCount)
	assert.True(t, snap.FirstUseDate.Equal(baseTime))
	first, ok := f.store.GetDouble(key(models.KeyFirstUseDate))
	require.True(t, ok)
	assert.Equal(t, models.TimeToEpoch(baseTime), first)
}

func TestRecordUse_KeepsFlagsForSameVersion(t *testing.T) {
	f := newTrackerFixture()

	_, _ = f.tracker.RecordUse("1.0")
	f.tracker.MarkDeclined()

	snap, err := f.tracker.RecordUse("1.0")
	require.NoError(t, err)
	assert.True(t, snap.DeclinedToRate)
	assert.Equal(t, 2, snap.UseCount)
}

func TestRecordUse_EmptyVersionLeavesStoreUntouched(t *testing.T) {
	f := newTrackerFixture()

	_, err := f.tracker.RecordUse("")
	assert.ErrorIs(t, err, ErrMissingMetadata)
	assert.Empty(t, f.store.Values)
	assert.Zero(t, f.store.FlushCalls)
	assert.Zero(t, f.metrics.UsesRecorded)
}

func TestRecordUse_FlushErrorIsNotFatal(t *testing.T) {
	f := newTrackerFixture()
	f.store.FlushErr = errors.New("disk full")

	snap, err := f.tracker.RecordUse("1.0")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.UseCount)
	assert.Equal(t, 1, f.logger.Count("error"))

	snap, err = f.tracker.RecordUse("1.0")
	require.NoError(t, err)
	assert.Equal(t, 2, snap.UseCount)
}

func TestMarkers(t *testing.T) {
	f := newTrackerFixture()
	_, _ = f.tracker.RecordUse("1.0")
	flushes := f.store.FlushCalls

	f.tracker.MarkRated()
	rated, ok := f.store.GetBool(key(models.KeyRatedCurrentVersion))
	assert.True(t, ok)
	assert.True(t, rated)

	f.tracker.MarkDeclined()
	declined, _ := f.store.GetBool(key(models.KeyDeclinedToRate))
	assert.True(t, declined)

	f.clock.Advance(time.Hour)
	f.tracker.MarkRemindLater()
	snap := f.tracker.Snapshot()
	assert.True(t, snap.ReminderRequestDate.Equal(baseTime.Add(time.Hour)))

	assert.Equal(t, flushes+3, f.store.FlushCalls)
}

func TestReset(t *testing.T) {
	f := newTrackerFixture()
	for i := 0; i < 5; i++ {
		_, _ = f.tracker.RecordUse("1.0")
	}
	f.tracker.MarkDeclined()

	snap, err := f.tracker.Reset("1.0")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.UseCount)
	assert.False(t, f.tracker.Snapshot().DeclinedToRate)

	_, err = f.tracker.Reset("")
	assert.ErrorIs(t, err, ErrMissingMetadata)
}

func TestUsageTracker_CustomKeyPrefix(t *testing.T) {
	store := testutil.NewMockStore()
	conf := &structures.Config{Storage: structures.StorageConfig{KeyPrefix: "app."}}
	tracker := NewUsageTracker(conf, store, testutil.NewMockClock(baseTime), &testutil.MockLogger{}, testutil.NewMockMetrics())

	_, err := tracker.RecordUse("2.0")
	require.NoError(t, err)

	_, ok := store.GetString("app." + models.KeySavedVersion)
	assert.True(t, ok)
	_, ok = store.GetString(key(models.KeySavedVersion))
	assert.False(t, ok)
}
