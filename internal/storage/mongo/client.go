package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/ilindan-dev/order-notifier/internal/config"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ErrFailedToConnect is returned when the client cannot reach the server
// after all retry attempts.
var ErrFailedToConnect = errors.New("mongo: failed to connect")

// NewDatabase connects to MongoDB and returns a handle to the configured
// database. Connection attempts are retried with a fixed interval so the
// worker survives a slow database start.
func NewDatabase(cfg *config.Config) (*mongo.Database, error) {
	attempts := cfg.Mongo.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.Mongo.URI).
				SetConnectTimeout(cfg.Mongo.ConnectTimeout).
				SetRetryWrites(true).
				SetRetryReads(true),
		)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
			pingErr := client.Ping(ctx, nil)
			cancel()
			if pingErr == nil {
				return client.Database(cfg.Mongo.Database), nil
			}
			_ = client.Disconnect(context.Background())
		}

		time.Sleep(cfg.Mongo.RetryInterval)
	}

	return nil, ErrFailedToConnect
}
