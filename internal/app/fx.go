package app

import (
	"context"
	"net/http"

	"github.com/ilindan-dev/order-notifier/internal/config"
	"github.com/ilindan-dev/order-notifier/internal/consumer"
	deliveryHTTP "github.com/ilindan-dev/order-notifier/internal/delivery/http"
	repo "github.com/ilindan-dev/order-notifier/internal/domain/repository"
	"github.com/ilindan-dev/order-notifier/internal/logger"
	"github.com/ilindan-dev/order-notifier/internal/notify"
	mongostorage "github.com/ilindan-dev/order-notifier/internal/storage/mongo"
	"github.com/ilindan-dev/order-notifier/internal/storage/rabbitmq"
	redisstorage "github.com/ilindan-dev/order-notifier/internal/storage/redis"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// CommonModule provides dependencies that are shared between the API and Worker applications.
var CommonModule = fx.Options(
	fx.Provide(
		// Core components
		config.NewConfig,
		logger.NewLogger,

		// Messaging backbone
		rabbitmq.NewConnection,
		rabbitmq.NewEventQueue,
	),
)

// APIModule defines the Fx module for the HTTP API application.
var APIModule = fx.Options(
	CommonModule, // Include all shared components
	fx.Provide(
		// API-specific components
		func(q *rabbitmq.EventQueue) deliveryHTTP.EventPublisher { return q },
		deliveryHTTP.NewHandlers,
		deliveryHTTP.NewWebhookHandlers,
		deliveryHTTP.NewServer,
	),

	fx.Invoke(func(server *deliveryHTTP.Server, lc fx.Lifecycle) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						panic(err)
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return server.Shutdown(ctx)
			},
		})
	}),
)

// WorkerModule defines the Fx module for the notification worker application.
var WorkerModule = fx.Options(
	CommonModule, // Include all shared components
	fx.Provide(
		// Storage Layer - concrete implementations
		mongostorage.NewDatabase,
		redisstorage.NewClient,
		mongostorage.NewCustomerRegistry,
		mongostorage.NewProductCatalog,
		mongostorage.NewReceiptStore,
		redisstorage.NewProductCache,

		// Interface bindings for the dispatch core
		func(r *mongostorage.CustomerRegistry) repo.CustomerRegistry { return r },
		func(s *mongostorage.ReceiptStore) repo.ReceiptStore { return s },
		func(c *redisstorage.ProductCache) repo.ProductCache { return c },
		func(c *mongostorage.ProductCatalog) repo.ProductCatalog { return c },

		// Dispatch core and consumer
		notify.NewSender,
		notify.NewService,
		func(s *notify.Service) consumer.Notifier { return s },
		consumer.New,
	),

	fx.Decorate(func(
		catalog repo.ProductCatalog,
		cache repo.ProductCache,
		logger *zerolog.Logger,
	) repo.ProductCatalog {
		return redisstorage.NewCachedProductCatalog(catalog, cache, logger)
	}),

	fx.Invoke(func(consumer *consumer.Consumer, lc fx.Lifecycle) {
		ctx, cancel := context.WithCancel(context.Background())
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go consumer.Start(ctx)
				return nil
			},
			OnStop: func(context.Context) error {
				cancel()
				return nil
			},
		})
	}),
)
