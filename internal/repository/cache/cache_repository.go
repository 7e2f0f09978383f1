package cache

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agency-service/internal/domain/repository"
)

type cacheRepository struct {
	redis *Redis
}

// NewCacheRepository wraps the Redis client as a byte cache.
func NewCacheRepository(r *Redis) repository.CacheRepository {
	return &cacheRepository{redis: r}
}

// Get returns the cached bytes, or nil on a miss.
func (c *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.redis.client.Get(ctx, key).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get %q: %w", key, err)
	}
	return value, nil
}

func (c *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.redis.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

func (c *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := c.redis.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete %q: %w", key, err)
	}
	return nil
}
