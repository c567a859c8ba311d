package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// Get returns the stored value, reporting absence instead of erroring on
// a missing or expired key.
func (s *SecretStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.redis.Get(ctx, key)
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetWithTTL stores a value that expires after ttl
func (s *SecretStore) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.redis.Set(ctx, key, value, ttl)
}

// Delete removes a key; deleting an absent key is not an error
func (s *SecretStore) Delete(ctx context.Context, key string) error {
	return s.redis.Delete(ctx, key)
}

// IncrementWithTTL atomically increments a counter, attaching the TTL on
// creation, and returns the post-increment count
func (s *SecretStore) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return s.redis.IncrWithTTL(ctx, key, ttl)
}

// TTL returns the remaining lifetime of a key. Absent keys report a
// negative duration, matching Redis semantics.
func (s *SecretStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	return s.redis.TTL(ctx, key)
}
