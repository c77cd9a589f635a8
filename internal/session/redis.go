package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phrazzld/slidegen-api/internal/domain"
)

// keyPrefix namespaces session keys in Redis.
const keyPrefix = "session:"

// redisStore implements Store using Redis with native TTL expiration.
// Suitable for production and multi-instance deployments.
type redisStore struct {
	client *redis.Client
}

func sessionKey(presentationID string) string {
	return keyPrefix + presentationID
}

// Get implements Store. Redis expires keys itself, so a missing key covers
// both the absent and expired cases.
func (s *redisStore) Get(ctx context.Context, presentationID string) (*domain.Session, error) {
	val, err := s.client.Get(ctx, sessionKey(presentationID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("deserialize session %s: %w", presentationID, err)
	}
	return &sess, nil
}

// Set implements Store. The write resets the key's TTL (refresh-on-write).
func (s *redisStore) Set(ctx context.Context, presentationID string, sess *domain.Session, ttl time.Duration) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("serialize session %s: %w", presentationID, err)
	}
	if err := s.client.Set(ctx, sessionKey(presentationID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete implements Store.
func (s *redisStore) Delete(ctx context.Context, presentationID string) (bool, error) {
	n, err := s.client.Del(ctx, sessionKey(presentationID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis del: %w", err)
	}
	return n > 0, nil
}

// TTL implements Store.
func (s *redisStore) TTL(ctx context.Context, presentationID string) (time.Duration, error) {
	d, err := s.client.TTL(ctx, sessionKey(presentationID)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis ttl: %w", err)
	}
	// go-redis reports -2 for a missing key and -1 for no expiry; sessions
	// are always written with a TTL, so both mean "not found" here.
	if d < 0 {
		return 0, ErrNotFound
	}
	return d, nil
}

// Close implements Store.
func (s *redisStore) Close() error {
	return s.client.Close()
}
