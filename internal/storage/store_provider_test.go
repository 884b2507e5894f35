package storage

import (
	"path/filepath"
	"reviewreminder/internal/structures"
	"reviewreminder/internal/testutil"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func providerConfig(driver string) *structures.Config {
	return &structures.Config{
		AppID:   "123",
		Storage: structures.StorageConfig{Driver: driver},
	}
}

func TestNewStoreProvider_Memory(t *testing.T) {
	store, cleanup, err := NewStoreProvider(providerConfig("memory"), &testutil.MockCompressor{}, testutil.NewMockCache(), &testutil.MockLogger{}, testutil.NewMockMetrics())
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &MemoryStore{}, store)
}

func TestNewStoreProvider_FileFlushesOnCleanup(t *testing.T) {
	conf := providerConfig("file")
	conf.Storage.FilePath = filepath.Join(t.TempDir(), "settings.zst")

	store, cleanup, err := NewStoreProvider(conf, &testutil.MockCompressor{}, testutil.NewMockCache(), &testutil.MockLogger{}, testutil.NewMockMetrics())
	require.NoError(t, err)
	store.SetInt("abrrUseCount", 2)
	cleanup()

	reopened, err := NewFileStore(conf.Storage.FilePath, &testutil.MockCompressor{}, &testutil.MockLogger{}, testutil.NewMockMetrics())
	require.NoError(t, err)
	n, _ := reopened.GetInt("abrrUseCount")
	assert.Equal(t, 2, n)
}

func TestNewStoreProvider_RedisWithCache(t *testing.T) {
	mr := miniredis.RunT(t)
	conf := providerConfig("redis")
	conf.Storage.RedisURL = "redis://" + mr.Addr()
	conf.Cache = structures.CacheConfig{Enabled: true, Size: 1}

	store, cleanup, err := NewStoreProvider(conf, &testutil.MockCompressor{}, testutil.NewMockCache(), &testutil.MockLogger{}, testutil.NewMockMetrics())
	require.NoError(t, err)
	assert.IsType(t, &CachedStore{}, store)

	store.SetString("abrrSavedVersion", "3.1")
	cleanup()
	assert.Equal(t, "3.1", mr.HGet("abrr:123", "abrrSavedVersion"))
}

func TestNewStoreProvider_UnknownDriver(t *testing.T) {
	_, _, err := NewStoreProvider(providerConfig("sqlite"), &testutil.MockCompressor{}, testutil.NewMockCache(), &testutil.MockLogger{}, testutil.NewMockMetrics())
	assert.Error(t, err)
}

func TestHashKey(t *testing.T) {
	assert.Equal(t, "abrr:42", HashKey("", "42"))
	assert.Equal(t, "rr:42", HashKey("rr", "42"))
}
