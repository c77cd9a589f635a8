package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phrazzld/slidegen-api/internal/domain"
)

// Store defines the storage backend for presentation sessions.
//
// Implementations treat an expired session as absent: Get returns (nil, nil)
// for both missing and expired entries, and reclaiming the memory of expired
// entries is the implementation's concern.
type Store interface {
	// Get retrieves a session by presentation ID.
	// Returns (nil, nil) if the session is not found or has expired.
	Get(ctx context.Context, presentationID string) (*domain.Session, error)

	// Set stores the session and (re)starts its TTL clock.
	Set(ctx context.Context, presentationID string, s *domain.Session, ttl time.Duration) error

	// Delete removes a session. Reports whether it existed.
	Delete(ctx context.Context, presentationID string) (bool, error)

	// TTL returns the remaining time before the session expires.
	// Returns ErrNotFound if the session does not exist.
	TTL(ctx context.Context, presentationID string) (time.Duration, error)

	// Close releases any resources held by the store.
	Close() error
}

// StoreType identifies a session store driver.
type StoreType string

// Supported store drivers.
const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeRedis  StoreType = "redis"
)

// StoreOption is a functional option for configuring a session store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	redisClient *redis.Client
}

// WithRedisClient sets the Redis client for the Redis store.
func WithRedisClient(client *redis.Client) StoreOption {
	return func(c *storeConfig) {
		c.redisClient = client
	}
}

// NewStore creates a session store for the given driver type.
// The Redis driver requires WithRedisClient.
func NewStore(storeType StoreType, opts ...StoreOption) (Store, error) {
	cfg := &storeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	switch storeType {
	case StoreTypeMemory:
		return newMemoryStore(), nil

	case StoreTypeRedis:
		if cfg.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		return &redisStore{client: cfg.redisClient}, nil

	default:
		return nil, ErrInvalidStoreType
	}
}
