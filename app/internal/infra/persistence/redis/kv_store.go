package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domkv "example.com/shareeghor/app/internal/domain/kv"
)

const keyNamespace = "shareeghor"

type cmdable interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// KVStore stores values in Redis under the shareeghor: namespace. Every
// write refreshes the TTL; zero means no expiry.
type KVStore struct {
	store cmdable
	raw   *redis.Client
	ttl   time.Duration
}

// NewKVStore parses url, connects and pings.
func NewKVStore(ctx context.Context, url string, ttl time.Duration) (*KVStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &KVStore{store: raw, raw: raw, ttl: ttl}, nil
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.store.Get(ctx, namespaced(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domkv.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.store.Set(ctx, namespaced(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.store.Del(ctx, namespaced(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Ping(ctx context.Context) error {
	return s.store.Ping(ctx).Err()
}

func (s *KVStore) Close() error {
	if s.raw == nil {
		return nil
	}
	return s.raw.Close()
}

func namespaced(key string) string {
	return keyNamespace + ":" + key
}
