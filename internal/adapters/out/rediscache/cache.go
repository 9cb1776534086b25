// Package rediscache provides a Redis-backed snapshot cache for query
// handlers. Entries are plain byte payloads with a per-entry TTL; a missing
// key is a cache miss, never an error.
package rediscache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a Redis client as a snapshot cache.
type Cache struct {
	client *redis.Client
}

// New creates a snapshot cache on top of an existing Redis client.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// NewWithAddr creates a snapshot cache connected to the given Redis address.
func NewWithAddr(addr, password string, db int) *Cache {
	return New(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}))
}

// Get retrieves a cached payload. Returns (nil, false, nil) on a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return payload, true, nil
}

// Set stores a payload under key for the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Close releases the underlying Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}
