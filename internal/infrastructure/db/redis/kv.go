package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/medilink/directory/internal/infrastructure/kv"
)

// KV is a kv.Store over a Redis client. Keys are stored without expiry under
// prefix.
type KV struct {
	client *redis.Client
	prefix string
}

// NewKV wraps client. prefix is prepended verbatim to every key.
func NewKV(client *redis.Client, prefix string) *KV {
	return &KV{client: client, prefix: prefix}
}

func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return v, nil
}

func (s *KV) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *KV) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

func (s *KV) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *KV) Close() error {
	return s.client.Close()
}

func (s *KV) key(k string) string {
	return s.prefix + k
}
