package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisStore keeps session values in Redis so several dashboard processes
// can share one login
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger zerolog.Logger
}

type RedisStoreParams struct {
	RedisClient *redis.Client
	// KeyPrefix namespaces the keys, e.g. "storefront:session:"
	KeyPrefix string
	// TTL expires stored values; zero keeps them until deleted
	TTL    time.Duration
	Logger zerolog.Logger
}

func NewRedisStore(params RedisStoreParams) *RedisStore {
	return &RedisStore{
		client: params.RedisClient,
		prefix: params.KeyPrefix,
		ttl:    params.TTL,
		logger: params.Logger.With().Str("component", "redis_session_store").Logger(),
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to read session key")
		return "", false, fmt.Errorf("failed to read session key %s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to write session key")
		return fmt.Errorf("failed to write session key %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = s.prefix + key
	}

	if err := s.client.Del(ctx, prefixed...).Err(); err != nil {
		s.logger.Error().Err(err).Strs("keys", keys).Msg("Failed to delete session keys")
		return fmt.Errorf("failed to delete session keys: %w", err)
	}
	return nil
}
