package repository

import (
	"context"
	"errors"

	"github.com/ilindan-dev/order-notifier/internal/domain/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// CustomerRegistry defines the contract for the customer store.
// The notifier's only mutation of it is pruning a recipient that the
// messaging provider reported as permanently unreachable.
type CustomerRegistry interface {
	// DeleteByChatID removes the customer keyed by the Telegram chat id.
	// It reports whether an entry was actually removed; deleting an
	// absent entry is a no-op, not an error.
	DeleteByChatID(ctx context.Context, chatID int64) (bool, error)
}

// ProductCatalog defines read access to the product catalog, used only
// for lazy variant-name backfill when composing admin alerts.
type ProductCatalog interface {
	// GetByID retrieves a product with its variant list.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// ReceiptStore defines read access to the receipt blob store.
type ReceiptStore interface {
	// GetByID retrieves the receipt content and metadata by its opaque reference.
	GetByID(ctx context.Context, id string) (*model.Receipt, error)
}

// ProductCache defines the contract for a product caching layer.
type ProductCache interface {
	// Get retrieves a product from the cache.
	Get(ctx context.Context, id string) (*model.Product, error)

	// Set adds a product to the cache.
	Set(ctx context.Context, p *model.Product) error
}
