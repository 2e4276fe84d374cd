package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ilindan-dev/order-notifier/internal/domain/model"
	"github.com/rs/zerolog"
)

// EventPublisher hands order events to the notification worker.
type EventPublisher interface {
	Publish(ctx context.Context, event *model.OrderEvent) error
}

type Handlers struct {
	queue  EventPublisher
	logger zerolog.Logger
}

// NewHandlers creates a new instance of Handlers.
func NewHandlers(queue EventPublisher, logger *zerolog.Logger) *Handlers {
	return &Handlers{
		queue:  queue,
		logger: logger.With().Str("layer", "http_handler").Logger(),
	}
}

// RegisterRoutes sets up the routing for the order-events API.
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/events/orders", h.PublishOrderEvent)
	}
}

// PublishOrderEvent handles an inbound order lifecycle event: it is
// validated, queued for the worker, and acknowledged with 202. Delivery
// happens asynchronously.
func (h *Handlers) PublishOrderEvent(c *gin.Context) {
	var req OrderEventRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid request body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	event := toDomainEvent(&req)

	if err := h.queue.Publish(c.Request.Context(), event); err != nil {
		h.logger.Error().Err(err).Str("order_id", event.Order.ID).Msg("failed to publish order event")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to queue order event"})
		return
	}

	c.JSON(http.StatusAccepted, QueuedResponse{Status: "queued", OrderID: event.Order.ID})
}
