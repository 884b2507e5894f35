package storage

import (
	"reviewreminder/internal/providers"
	"reviewreminder/internal/services/interfaces"
	"strconv"
)

var typePrefixes = []string{"b:", "i:", "d:", "s:"}

// CachedStore puts the settings cache in front of a slower store. Writes go
// through to both; absent values are never cached.
type CachedStore struct {
	inner interfaces.KeyValueStore
	cache providers.CacheProviderInterface
}

func NewCachedStore(inner interfaces.KeyValueStore, cache providers.CacheProviderInterface) *CachedStore {
	return &CachedStore{inner: inner, cache: cache}
}

func (cs *CachedStore) GetBool(key string) (bool, bool) {
	if raw, ok := cs.cache.Get("b:" + key); ok {
		if v, err := strconv.ParseBool(string(raw)); err == nil {
			return v, true
		}
	}
	v, ok := cs.inner.GetBool(key)
	if ok {
		cs.cache.Set("b:"+key, []byte(strconv.FormatBool(v)))
	}
	return v, ok
}

func (cs *CachedStore) GetInt(key string) (int, bool) {
	if raw, ok := cs.cache.Get("i:" + key); ok {
		if v, err := strconv.Atoi(string(raw)); err == nil {
			return v, true
		}
	}
	v, ok := cs.inner.GetInt(key)
	if ok {
		cs.cache.Set("i:"+key, []byte(strconv.Itoa(v)))
	}
	return v, ok
}

func (cs *CachedStore) GetDouble(key string) (float64, bool) {
	if raw, ok := cs.cache.Get("d:" + key); ok {
		if v, err := strconv.ParseFloat(string(raw), 64); err == nil {
			return v, true
		}
	}
	v, ok := cs.inner.GetDouble(key)
	if ok {
		cs.cache.Set("d:"+key, []byte(strconv.FormatFloat(v, 'f', -1, 64)))
	}
	return v, ok
}

func (cs *CachedStore) GetString(key string) (string, bool) {
	if raw, ok := cs.cache.Get("s:" + key); ok {
		return string(raw), true
	}
	v, ok := cs.inner.GetString(key)
	if ok {
		cs.cache.Set("s:"+key, []byte(v))
	}
	return v, ok
}

func (cs *CachedStore) SetBool(key string, value bool) {
	cs.inner.SetBool(key, value)
	cs.evict(key, "b:")
	cs.cache.Set("b:"+key, []byte(strconv.FormatBool(value)))
}

func (cs *CachedStore) SetInt(key string, value int) {
	cs.inner.SetInt(key, value)
	cs.evict(key, "i:")
	cs.cache.Set("i:"+key, []byte(strconv.Itoa(value)))
}

func (cs *CachedStore) SetDouble(key string, value float64) {
	cs.inner.SetDouble(key, value)
	cs.evict(key, "d:")
	cs.cache.Set("d:"+key, []byte(strconv.FormatFloat(value, 'f', -1, 64)))
}

func (cs *CachedStore) SetString(key string, value string) {
	cs.inner.SetString(key, value)
	cs.evict(key, "s:")
	cs.cache.Set("s:"+key, []byte(value))
}

// evict drops entries cached for key under the other value types.
func (cs *CachedStore) evict(key, keep string) {
	for _, prefix := range typePrefixes {
		if prefix != keep {
			cs.cache.Del(prefix + key)
		}
	}
}

func (cs *CachedStore) Flush() error {
	return cs.inner.Flush()
}
