package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fintrellis/assetbook/internal/usecase"
)

// IdempotencyStore implements usecase.IdempotencyStore on Redis.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "assetbook:idem:",
	}
}

// CheckAndSet reports whether the key has been seen. On first sight it
// claims the key: with the given response when one is supplied, with an
// in-flight marker otherwise. A concurrent claim by another request is
// reported as seen.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	redisKey := s.prefix + key

	stored, err := s.client.Get(ctx, redisKey).Bytes()
	switch {
	case err == nil:
		return true, stored, nil
	case !errors.Is(err, redis.Nil):
		return false, nil, err
	}

	value := any(usecase.IdempotencyInFlight)
	if response != nil {
		value = response
	}

	claimed, err := s.client.SetNX(ctx, redisKey, value, ttl).Result()
	if err != nil {
		return false, nil, err
	}

	if !claimed {
		stored, err := s.client.Get(ctx, redisKey).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return false, nil, err
		}
		return true, stored, nil
	}

	return false, nil, nil
}

// Update replaces the stored value with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
}
