package featurecache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pkgredis "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/redis"
)

const redisKeyPrefix = "features:"

// RedisStore keeps feature sets in Redis under the "features:" prefix.
type RedisStore struct {
	client *pkgredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisStore(client *pkgredis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: slog.Default().With("component", "feature-cache-redis"),
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+key)
	if err != nil {
		if pkgredis.IsNilError(err) {
			return nil, miss(key)
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, redisKeyPrefix+key, value, s.ttl); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Invalidate drops every cached feature set.
func (s *RedisStore) Invalidate(ctx context.Context) error {
	deleted, err := s.client.FlushByPattern(ctx, redisKeyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating feature cache: %w", err)
	}
	s.logger.Info("cache invalidate", "keys_deleted", deleted)
	return nil
}

func (s *RedisStore) Name() string { return "redis" }

func (s *RedisStore) Close() error { return s.client.Close() }
