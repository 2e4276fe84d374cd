package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ilindan-dev/order-notifier/internal/domain/model"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Constants for our RabbitMQ topology.
const (
	OrderEventsExchange = "orders.events.exchange"
	OrderEventsQueue    = "orders.events.notify"

	Direct = "direct"
)

// EventQueue publishes order events for the notification worker.
// It uses the low-level amqp091-go library directly for reliability.
type EventQueue struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger zerolog.Logger
}

// NewEventQueue creates a new instance of the EventQueue publisher.
// It receives a shared amqp.Connection to create its own channel.
func NewEventQueue(conn *amqp.Connection, logger *zerolog.Logger) (*EventQueue, error) {
	channel, err := conn.Channel()
	if err != nil {
		logger.Error().Err(err).Msg("storage: rabbitMQ: NewEventQueue: failed to open a channel")
		return nil, fmt.Errorf("storage: rabbitMQ: NewEventQueue: failed to open a channel: %w", err)
	}

	queue := &EventQueue{
		conn:   conn,
		ch:     channel,
		logger: logger.With().Str("component", "rabbitmq_publisher").Logger(),
	}

	if err = queue.setupTopology(); err != nil {
		queue.logger.Error().Err(err).Msg("storage: rabbitMQ: NewEventQueue: failed to setup topology")
		return nil, fmt.Errorf("storage: rabbitMQ: NewEventQueue: failed to setup topology: %w", err)
	}

	return queue, nil
}

// setupTopology declares the order-events exchange and queue.
func (q *EventQueue) setupTopology() error {
	q.logger.Info().Msg("setting up rabbitmq topology")

	if err := q.ch.ExchangeDeclare(OrderEventsExchange, Direct, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", OrderEventsExchange, err)
	}

	if _, err := q.ch.QueueDeclare(OrderEventsQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", OrderEventsQueue, err)
	}

	if err := q.ch.QueueBind(OrderEventsQueue, "", OrderEventsExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s to exchange %s: %w", OrderEventsQueue, OrderEventsExchange, err)
	}

	q.logger.Info().Msg("rabbitmq topology setup successful")
	return nil
}

// Publish hands an order event to the notification worker.
func (q *EventQueue) Publish(ctx context.Context, event *model.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		q.logger.Error().Err(err).Str("order_id", event.Order.ID).Msg("failed to marshal order event")
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	return q.ch.PublishWithContext(ctx, OrderEventsExchange, "", false, false, msg)
}

// Close gracefully shuts down the channel. The connection is managed by Fx.
func (q *EventQueue) Close() error {
	if q.ch != nil {
		return q.ch.Close()
	}
	return nil
}
