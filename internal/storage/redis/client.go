package redis

import (
	"github.com/ilindan-dev/order-notifier/internal/config"
	goredis "github.com/redis/go-redis/v9"
)

// NewClient creates a new go-redis client from the application config.
func NewClient(cfg *config.Config) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
