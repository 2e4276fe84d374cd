package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/ilindan-dev/order-notifier/internal/domain/model"
	repo "github.com/ilindan-dev/order-notifier/internal/domain/repository"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Ensure ProductCatalog implements the interface
var _ repo.ProductCatalog = (*ProductCatalog)(nil)

const productsCollection = "products"

// ProductCatalog implements the repository.ProductCatalog interface
// on top of the products collection.
type ProductCatalog struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewProductCatalog creates a new instance of the ProductCatalog.
func NewProductCatalog(db *mongo.Database, logger *zerolog.Logger) *ProductCatalog {
	return &ProductCatalog{
		coll:   db.Collection(productsCollection),
		logger: logger.With().Str("layer", "mongo_catalog").Logger(),
	}
}

// productDoc mirrors the stored shape of a product, projected down to the
// fields the notifier reads.
type productDoc struct {
	ID       bson.ObjectID `bson:"_id"`
	Name     string        `bson:"name"`
	Variants []variantDoc  `bson:"variants"`
}

type variantDoc struct {
	ID   string `bson:"id"`
	Name string `bson:"name"`
}

// GetByID retrieves a product with its name and variant list.
func (c *ProductCatalog) GetByID(ctx context.Context, id string) (*model.Product, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("mongo: invalid product id %q: %w", id, err)
	}

	projection := options.FindOne().SetProjection(bson.M{"name": 1, "variants": 1})

	var doc productDoc
	if err := c.coll.FindOne(ctx, bson.M{"_id": oid}, projection).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		c.logger.Err(err).Str("product_id", id).Msg("cannot get product")
		return nil, fmt.Errorf("mongo: FindOne products failed: %w", err)
	}

	return toDomainProduct(&doc), nil
}

// toDomainProduct converts a database document to a domain model.
func toDomainProduct(doc *productDoc) *model.Product {
	p := &model.Product{
		ID:   doc.ID.Hex(),
		Name: doc.Name,
	}
	for _, v := range doc.Variants {
		p.Variants = append(p.Variants, model.ProductVariant{ID: v.ID, Name: v.Name})
	}
	return p
}
