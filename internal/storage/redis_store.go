package storage

import (
	"context"
	"errors"
	"fmt"
	"reviewreminder/internal/providers"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 3 * time.Second

// RedisStore keeps the settings of one app in a single Redis hash. Writes are
// buffered and sent as one HSET on Flush so a read-modify-write lands atomically.
type RedisStore struct {
	client  *redis.Client
	hashKey string
	logger  providers.Logger

	mu      sync.Mutex
	pending map[string]string
}

// NewRedisStore connects to redisURL and fails fast when the server does not answer.
func NewRedisStore(ctx context.Context, redisURL, hashKey string, logger providers.Logger) (*RedisStore, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis url cannot be empty")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = redisOpTimeout
	opts.WriteTimeout = redisOpTimeout

	client := redis.NewClient(opts)

	initCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(initCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisStoreFromClient(client, hashKey, logger), nil
}

func NewRedisStoreFromClient(client *redis.Client, hashKey string, logger providers.Logger) *RedisStore {
	return &RedisStore{
		client:  client,
		hashKey: hashKey,
		logger:  logger,
		pending: make(map[string]string),
	}
}

func (rs *RedisStore) get(key string) (string, bool) {
	rs.mu.Lock()
	if v, ok := rs.pending[key]; ok {
		rs.mu.Unlock()
		return v, true
	}
	rs.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	v, err := rs.client.HGet(ctx, rs.hashKey, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			rs.logger.Errorf(providers.TypeApp, "Redis HGET %s %s failed: %s", rs.hashKey, key, err)
		}
		return "", false
	}
	return v, true
}

func (rs *RedisStore) set(key, value string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.pending[key] = value
}

func (rs *RedisStore) GetBool(key string) (bool, bool) {
	raw, ok := rs.get(key)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	return v, err == nil
}

func (rs *RedisStore) GetInt(key string) (int, bool) {
	raw, ok := rs.get(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}

func (rs *RedisStore) GetDouble(key string) (float64, bool) {
	raw, ok := rs.get(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	return v, err == nil
}

func (rs *RedisStore) GetString(key string) (string, bool) {
	return rs.get(key)
}

func (rs *RedisStore) SetBool(key string, value bool) {
	rs.set(key, strconv.FormatBool(value))
}

func (rs *RedisStore) SetInt(key string, value int) {
	rs.set(key, strconv.Itoa(value))
}

func (rs *RedisStore) SetDouble(key string, value float64) {
	rs.set(key, strconv.FormatFloat(value, 'f', -1, 64))
}

func (rs *RedisStore) SetString(key string, value string) {
	rs.set(key, value)
}

func (rs *RedisStore) Flush() error {
	rs.mu.Lock()
	if len(rs.pending) == 0 {
		rs.mu.Unlock()
		return nil
	}
	fields := make(map[string]interface{}, len(rs.pending))
	for k, v := range rs.pending {
		fields[k] = v
	}
	rs.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := rs.client.HSet(ctx, rs.hashKey, fields).Err(); err != nil {
		return fmt.Errorf("failed to flush settings to %q: %w", rs.hashKey, err)
	}

	rs.mu.Lock()
	for k, v := range fields {
		if rs.pending[k] == v {
			delete(rs.pending, k)
		}
	}
	rs.mu.Unlock()
	return nil
}

func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
