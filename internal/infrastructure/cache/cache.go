// Package cache provides a small byte cache for dashboard reads.
package cache

import (
	"context"
	"time"
)

// Cache stores serialized report payloads with a TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Noop satisfies Cache without storing anything. Used when no redis
// address is configured.
type Noop struct{}

func (Noop) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, nil
}

func (Noop) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}
