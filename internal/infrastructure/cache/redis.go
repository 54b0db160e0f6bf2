package cache

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Redis implements Cache on a redis instance.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a redis-backed cache.
func NewRedis(addr, password string, db int) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Redis{client: client}
}

// NewRedisFromClient wraps an existing client (tests).
func NewRedisFromClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Ping verifies connectivity.
func (c *Redis) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client.
func (c *Redis) Close() error {
	return c.client.Close()
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}
