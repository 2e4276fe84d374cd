package redis

import (
	"context"
	"errors"

	"github.com/ilindan-dev/order-notifier/internal/domain/model"
	repo "github.com/ilindan-dev/order-notifier/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Ensure CachedProductCatalog implements the interface
var _ repo.ProductCatalog = (*CachedProductCatalog)(nil)

// CachedProductCatalog is a decorator for a ProductCatalog that adds a
// caching layer using Redis. Variant-name backfill hits the catalog on
// every accepted order, so the hot products stay cached.
type CachedProductCatalog struct {
	primary repo.ProductCatalog
	cache   repo.ProductCache
	logger  zerolog.Logger
}

// NewCachedProductCatalog creates a new instance of the cached catalog.
// It takes the primary catalog and the cache as dependencies.
func NewCachedProductCatalog(
	primary repo.ProductCatalog,
	cache repo.ProductCache,
	logger *zerolog.Logger,
) *CachedProductCatalog {
	return &CachedProductCatalog{
		primary: primary,
		cache:   cache,
		logger:  logger.With().Str("layer", "cached_catalog").Logger(),
	}
}

// GetByID implements the cache-aside pattern. It first tries the cache;
// on a miss it fetches from the primary catalog, caches the result, and
// returns it.
func (c *CachedProductCatalog) GetByID(ctx context.Context, id string) (*model.Product, error) {
	cached, err := c.cache.Get(ctx, id)
	if err == nil {
		return cached, nil
	}

	if !errors.Is(err, repo.ErrNotFound) {
		c.logger.Error().Err(err).Str("product_id", id).Msg("cache get error, falling back to primary catalog")
	}

	product, err := c.primary.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, product); err != nil {
		c.logger.Error().Err(err).Str("product_id", id).Msg("failed to set cache after catalog fetch")
	}

	return product, nil
}
