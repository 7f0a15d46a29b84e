// Package cache provides an optional Redis-backed read-through cache for
// product reference data. Cache failures degrade to database lookups and
// never fail a request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/orderflow-tech/orderflow-application/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ProductCache caches product lookups used by order view enrichment.
type ProductCache interface {
	// Get returns the cached product and whether it was present.
	Get(ctx context.Context, id uuid.UUID) (*model.Product, bool)

	// Set stores a product under its id.
	Set(ctx context.Context, product *model.Product)
}

// redisProductCache implements ProductCache on go-redis.
type redisProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisProductCache connects to Redis and verifies the connection.
func NewRedisProductCache(ctx context.Context, addr string, ttl time.Duration, logger zerolog.Logger) (ProductCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisProductCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("cache", "product").Logger(),
	}, nil
}

func (c *redisProductCache) key(id uuid.UUID) string {
	return "product:" + id.String()
}

// Get returns the cached product and whether it was present.
func (c *redisProductCache) Get(ctx context.Context, id uuid.UUID) (*model.Product, bool) {
	payload, err := c.client.Get(ctx, c.key(id)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("product_id", id.String()).Msg("cache read failed")
		}
		return nil, false
	}

	var product model.Product
	if err := json.Unmarshal([]byte(payload), &product); err != nil {
		c.logger.Warn().Err(err).Str("product_id", id.String()).Msg("cache entry corrupt, ignoring")
		return nil, false
	}
	return &product, true
}

// Set stores a product under its id.
func (c *redisProductCache) Set(ctx context.Context, product *model.Product) {
	payload, err := json.Marshal(product)
	if err != nil {
		c.logger.Warn().Err(err).Str("product_id", product.ID.String()).Msg("cache encode failed")
		return
	}
	if err := c.client.Set(ctx, c.key(product.ID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("product_id", product.ID.String()).Msg("cache write failed")
	}
}

// noopCache is used when the product cache is disabled.
type noopCache struct{}

// NewNoop returns a cache that never hits.
func NewNoop() ProductCache {
	return noopCache{}
}

func (noopCache) Get(ctx context.Context, id uuid.UUID) (*model.Product, bool) { return nil, false }
func (noopCache) Set(ctx context.Context, product *model.Product)              {}
