package mongo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ilindan-dev/order-notifier/internal/domain/model"
	repo "github.com/ilindan-dev/order-notifier/internal/domain/repository"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Ensure ReceiptStore implements the interface
var _ repo.ReceiptStore = (*ReceiptStore)(nil)

const (
	defaultReceiptName        = "receipt"
	defaultReceiptContentType = "application/octet-stream"
)

// ReceiptStore implements the repository.ReceiptStore interface on top of
// a GridFS bucket holding the uploaded payment receipts.
type ReceiptStore struct {
	bucket *mongo.GridFSBucket
	logger zerolog.Logger
}

// NewReceiptStore creates a new instance of the ReceiptStore.
func NewReceiptStore(db *mongo.Database, logger *zerolog.Logger) *ReceiptStore {
	return &ReceiptStore{
		bucket: db.GridFSBucket(),
		logger: logger.With().Str("layer", "mongo_receipts").Logger(),
	}
}

// GetByID retrieves the receipt content and metadata by its GridFS object id.
func (s *ReceiptStore) GetByID(ctx context.Context, id string) (*model.Receipt, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("mongo: invalid receipt id %q: %w", id, err)
	}

	stream, err := s.bucket.OpenDownloadStream(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrFileNotFound) {
			return nil, repo.ErrNotFound
		}
		s.logger.Err(err).Str("receipt_id", id).Msg("cannot open receipt download stream")
		return nil, fmt.Errorf("mongo: OpenDownloadStream failed: %w", err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		s.logger.Err(err).Str("receipt_id", id).Msg("cannot read receipt content")
		return nil, fmt.Errorf("mongo: reading receipt content failed: %w", err)
	}

	file := stream.GetFile()

	receipt := &model.Receipt{
		Data:        data,
		Filename:    defaultReceiptName,
		ContentType: defaultReceiptContentType,
	}
	if file != nil {
		if file.Name != "" {
			receipt.Filename = file.Name
		}
		if ct, ok := file.Metadata.Lookup("contentType").StringValueOK(); ok && ct != "" {
			receipt.ContentType = ct
		}
	}

	return receipt, nil
}
