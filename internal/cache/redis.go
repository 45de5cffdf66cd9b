package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cache backed by a Redis server, for deployments with more
// than one API instance.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis cache for the given address.
func NewRedis(addr string) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Get returns the cached value if present.
func (r *Redis) Get(key string) (string, bool) {
	val, err := r.client.Get(context.Background(), key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores a value; a zero ttl means no expiry.
func (r *Redis) Set(key, value string, ttl time.Duration) error {
	return r.client.Set(context.Background(), key, value, ttl).Err()
}

// Delete removes a key.
func (r *Redis) Delete(key string) error {
	return r.client.Del(context.Background(), key).Err()
}
