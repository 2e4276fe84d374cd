package mongo

import (
	"context"
	"fmt"

	repo "github.com/ilindan-dev/order-notifier/internal/domain/repository"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Ensure CustomerRegistry implements the interface
var _ repo.CustomerRegistry = (*CustomerRegistry)(nil)

const customersCollection = "customers"

// CustomerRegistry implements the repository.CustomerRegistry interface
// on top of the customers collection.
type CustomerRegistry struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewCustomerRegistry creates a new instance of the CustomerRegistry.
func NewCustomerRegistry(db *mongo.Database, logger *zerolog.Logger) *CustomerRegistry {
	return &CustomerRegistry{
		coll:   db.Collection(customersCollection),
		logger: logger.With().Str("layer", "mongo_customers").Logger(),
	}
}

// DeleteByChatID removes the customer keyed by the Telegram chat id.
// An absent entry is a no-op: the boolean reports whether anything was removed.
func (r *CustomerRegistry) DeleteByChatID(ctx context.Context, chatID int64) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"telegram_id": chatID})
	if err != nil {
		r.logger.Err(err).Int64("chat_id", chatID).Msg("cannot delete customer")
		return false, fmt.Errorf("mongo: DeleteOne customers failed: %w", err)
	}
	return res.DeletedCount > 0, nil
}
