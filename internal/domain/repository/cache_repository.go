package repository

import (
	"context"
	"time"
)

// CacheRepository is a byte cache for read-side projections.
type CacheRepository interface {
	// Get returns the cached value or a nil slice on miss.
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
}
