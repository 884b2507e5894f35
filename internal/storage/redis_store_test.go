package storage

import (
	"context"
	"reviewreminder/internal/testutil"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rs, err := NewRedisStore(context.Background(), "redis://"+mr.Addr(), "abrr:123", &testutil.MockLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rs.Close() })
	return rs, mr
}

func TestRedisStore_WritesAreBufferedUntilFlush(t *testing.T) {
	rs, mr := newTestRedisStore(t)

	rs.SetString("abrrSavedVersion", "1.0")
	rs.SetInt("abrrUseCount", 3)

	v, ok := rs.GetString("abrrSavedVersion")
	assert.True(t, ok)
	assert.Equal(t, "1.0", v)
	assert.False(t, mr.Exists("abrr:123"))

	require.NoError(t, rs.Flush())
	assert.Equal(t, "1.0", mr.HGet("abrr:123", "abrrSavedVersion"))
	assert.Equal(t, "3", mr.HGet("abrr:123", "abrrUseCount"))
}

func TestRedisStore_ReadsFromServer(t *testing.T) {
	rs, mr := newTestRedisStore(t)
	mr.HSet("abrr:123", "abrrRatedCurrentVersion", "true")
	mr.HSet("abrr:123", "abrrFirstUseDate", "1700000000.5")
	mr.HSet("abrr:123", "abrrUseCount", "12")

	b, ok := rs.GetBool("abrrRatedCurrentVersion")
	assert.True(t, ok)
	assert.True(t, b)
	d, ok := rs.GetDouble("abrrFirstUseDate")
	assert.True(t, ok)
	assert.Equal(t, 1700000000.5, d)
	n, ok := rs.GetInt("abrrUseCount")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = rs.GetString("missing")
	assert.False(t, ok)
}

func TestRedisStore_MalformedValueIsAbsent(t *testing.T) {
	rs, mr := newTestRedisStore(t)
	mr.HSet("abrr:123", "abrrUseCount", "many")

	_, ok := rs.GetInt("abrrUseCount")
	assert.False(t, ok)
}

func TestRedisStore_FlushFailureKeepsPending(t *testing.T) {
	rs, mr := newTestRedisStore(t)
	rs.SetBool("abrrDeclinedToRate", true)

	mr.SetError("READONLY")
	assert.Error(t, rs.Flush())

	mr.SetError("")
	b, ok := rs.GetBool("abrrDeclinedToRate")
	assert.True(t, ok)
	assert.True(t, b)

	require.NoError(t, rs.Flush())
	assert.Equal(t, "true", mr.HGet("abrr:123", "abrrDeclinedToRate"))
}

func TestRedisStore_EmptyFlushIsNoop(t *testing.T) {
	rs, mr := newTestRedisStore(t)
	require.NoError(t, rs.Flush())
	assert.False(t, mr.Exists("abrr:123"))
}

func TestNewRedisStore_Errors(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "", "k", &testutil.MockLogger{})
	assert.Error(t, err)

	_, err = NewRedisStore(context.Background(), "://bad", "k", &testutil.MockLogger{})
	assert.Error(t, err)
}
