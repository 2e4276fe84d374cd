package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ilindan-dev/order-notifier/internal/domain/model"
	"github.com/ilindan-dev/order-notifier/internal/storage/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// defaultWorkerCount is the default number of worker goroutines in the pool.
const defaultWorkerCount = 5

// Notifier is the slice of the dispatch service the consumer needs.
type Notifier interface {
	NotifyAdminsNewOrder(ctx context.Context, order *model.Order)
	NotifyAdminOrderAccepted(ctx context.Context, order *model.Order)
	NotifyCustomerOrderStatus(ctx context.Context, order *model.Order)
}

// Consumer listens to the order-events queue and processes messages using
// a pool of workers.
type Consumer struct {
	logger      zerolog.Logger
	conn        *amqp.Connection // Raw connection to create channels for each worker.
	notifier    Notifier
	workerCount int
}

// New creates a new instance of Consumer.
func New(logger *zerolog.Logger, conn *amqp.Connection, notifier Notifier) *Consumer {
	return &Consumer{
		logger:      logger.With().Str("component", "consumer").Logger(),
		conn:        conn,
		notifier:    notifier,
		workerCount: defaultWorkerCount,
	}
}

// Start launches the worker pool to process messages from the queue.
// This is a blocking method that will run until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	c.logger.Info().Int("count", c.workerCount).Msg("Starting worker pool")
	var wg sync.WaitGroup

	for i := 0; i < c.workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			c.runWorker(ctx, workerID)
		}(i + 1)
	}

	wg.Wait()
	c.logger.Info().Msg("Consumer stopped")
}

// runWorker contains the main logic for a single worker goroutine.
func (c *Consumer) runWorker(ctx context.Context, workerID int) {
	logger := c.logger.With().Int("worker_id", workerID).Logger()
	logger.Info().Msg("Worker started")

	ch, err := c.conn.Channel()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open channel for worker")
		return
	}
	defer ch.Close()

	if err := ch.Qos(1, 0, false); err != nil {
		logger.Error().Err(err).Msg("Failed to set QoS")
		return
	}

	msgs, err := ch.Consume(
		rabbitmq.OrderEventsQueue,
		fmt.Sprintf("worker-%d", workerID), // A unique consumer tag.
		false,                              // autoAck: false. We will manually acknowledge messages.
		false,                              // exclusive
		false,                              // noLocal
		false,                              // noWait
		nil,                                // args
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to register a consumer")
		return
	}

	logger.Info().Msg("Worker is waiting for messages")

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Worker stopping due to context cancellation")
			return
		case msg, ok := <-msgs:
			if !ok {
				logger.Warn().Msg("Message channel closed by RabbitMQ, worker stopping")
				return
			}
			c.handleMessage(ctx, msg, logger)
		}
	}
}

// handleMessage processes a single message from the queue.
func (c *Consumer) handleMessage(ctx context.Context, msg amqp.Delivery, logger zerolog.Logger) {
	var event model.OrderEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		logger.Error().Err(err).Msg("Failed to unmarshal message, rejecting")
		_ = msg.Nack(false, false)
		return
	}

	log := logger.With().Str("order_id", event.Order.ID).Str("event", string(event.Type)).Logger()
	log.Info().Msg("Processing order event")

	c.dispatch(ctx, &event, log)

	// Dispatch is fire-and-forget: delivery outcomes are reported through
	// logs, so the message is acknowledged once handled.
	_ = msg.Ack(false)
}

// dispatch routes an order event to the notification operations it triggers.
func (c *Consumer) dispatch(ctx context.Context, event *model.OrderEvent, log zerolog.Logger) {
	order := &event.Order

	switch event.Type {
	case model.EventOrderCreated:
		c.notifier.NotifyAdminsNewOrder(ctx, order)
		c.notifier.NotifyCustomerOrderStatus(ctx, order)
	case model.EventOrderAccepted:
		c.notifier.NotifyAdminOrderAccepted(ctx, order)
		c.notifier.NotifyCustomerOrderStatus(ctx, order)
	case model.EventOrderStatusChanged:
		c.notifier.NotifyCustomerOrderStatus(ctx, order)
	default:
		log.Warn().Msg("Unknown event type, skipping")
	}
}
