package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ilindan-dev/order-notifier/internal/domain/model"
	repo "github.com/ilindan-dev/order-notifier/internal/domain/repository"
	"github.com/ilindan-dev/order-notifier/pkg/keybuilder"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Ensure ProductCache implements the interface
var _ repo.ProductCache = (*ProductCache)(nil)

// productTTL bounds how long a catalog entry may be served from the cache.
// Variant names change rarely, so a few hours of staleness is acceptable.
const productTTL = 6 * time.Hour

// ProductCache implements the repository.ProductCache interface
// using the standard go-redis client.
type ProductCache struct {
	redis  *goredis.Client
	logger zerolog.Logger
}

// NewProductCache creates a new instance of the ProductCache.
func NewProductCache(logger *zerolog.Logger, redis *goredis.Client) *ProductCache {
	return &ProductCache{
		redis:  redis,
		logger: logger.With().Str("layer", "redis_cache").Logger(),
	}
}

// Get retrieves a product from the cache.
func (c *ProductCache) Get(ctx context.Context, id string) (*model.Product, error) {
	key := keybuilder.RedisProductKeyBuild(id)
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, repo.ErrNotFound
		}
		c.logger.Error().Err(err).Str("key", key).Msg("failed to get key from redis")
		return nil, err
	}

	var product model.Product
	if err := json.Unmarshal([]byte(val), &product); err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("failed to unmarshal product from cache")
		return nil, fmt.Errorf("failed to unmarshal cached data: %w", err)
	}

	return &product, nil
}

// Set adds a product to the cache.
func (c *ProductCache) Set(ctx context.Context, p *model.Product) error {
	key := keybuilder.RedisProductKeyBuild(p.ID)
	pBytes, err := json.Marshal(p)
	if err != nil {
		c.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to marshal product for cache")
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	if err := c.redis.Set(ctx, key, pBytes, productTTL).Err(); err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("failed to set key in redis")
		return err
	}

	return nil
}
