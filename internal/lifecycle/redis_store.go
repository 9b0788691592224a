package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares generations across API instances using INCR.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore constructs a RedisStore. Keys expire after ttl of inactivity.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "lifecycle:"
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// Advance increments the generation for key.
func (s *RedisStore) Advance(ctx context.Context, key string) (uint64, error) {
	redisKey := s.prefix + key
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", redisKey, err)
	}
	return uint64(incr.Val()), nil
}

// Current reads the generation for key; a missing key is generation 0.
func (s *RedisStore) Current(ctx context.Context, key string) (uint64, error) {
	redisKey := s.prefix + key
	value, err := s.client.Get(ctx, redisKey).Uint64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get %s: %w", redisKey, err)
	}
	return value, nil
}
