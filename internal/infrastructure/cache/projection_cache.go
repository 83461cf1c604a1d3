package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finboard/backend/internal/domain/forecast"
	"github.com/finboard/backend/internal/domain/shared"
)

const projectionKeyPrefix = "forecast:projection:"

// RedisProjectionCache stores the latest projection per brand in Redis.
// Projections are disposable artifacts; a cache miss or a Redis outage
// just means the caller recomputes.
type RedisProjectionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisProjectionCache connects to Redis and returns a projection cache
func NewRedisProjectionCache(cfg RedisConfig, ttl time.Duration) (*RedisProjectionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisProjectionCacheWithClient(client, ttl), nil
}

// NewRedisProjectionCacheWithClient creates a cache over an existing
// client, useful for tests or client sharing
func NewRedisProjectionCacheWithClient(client *redis.Client, ttl time.Duration) *RedisProjectionCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisProjectionCache{client: client, ttl: ttl}
}

// StoreLatest writes the brand's latest projection, replacing any prior one
func (c *RedisProjectionCache) StoreLatest(ctx context.Context, brand shared.Brand, projection *forecast.Projection) error {
	payload, err := json.Marshal(projection)
	if err != nil {
		return fmt.Errorf("marshal projection: %w", err)
	}
	if err := c.client.Set(ctx, c.key(brand), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCacheUnavailable, err)
	}
	return nil
}

// Latest returns the brand's cached projection, or shared.ErrNotFound when
// none is cached
func (c *RedisProjectionCache) Latest(ctx context.Context, brand shared.Brand) (*forecast.Projection, error) {
	payload, err := c.client.Get(ctx, c.key(brand)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrCacheUnavailable, err)
	}

	var projection forecast.Projection
	if err := json.Unmarshal(payload, &projection); err != nil {
		return nil, fmt.Errorf("unmarshal projection: %w", err)
	}
	return &projection, nil
}

func (c *RedisProjectionCache) key(brand shared.Brand) string {
	return projectionKeyPrefix + brand.Normalize().String()
}
