package http

import (
	"github.com/ilindan-dev/order-notifier/internal/domain/model"
)

// OrderEventRequest defines the structure of an inbound order event.
// It uses `json` tags for unmarshalling and `binding` for validation with Gin.
type OrderEventRequest struct {
	Type  string       `json:"type" binding:"required,oneof=order.created order.accepted order.status_changed"`
	Order OrderPayload `json:"order" binding:"required"`
}

// OrderPayload carries the order fields the notifier consumes.
type OrderPayload struct {
	ID               string            `json:"id" binding:"required"`
	CustomerName     string            `json:"customer_name"`
	CustomerPhone    string            `json:"customer_phone"`
	DeliveryAddress  string            `json:"delivery_address"`
	TotalAmount      float64           `json:"total_amount"`
	Items            []LineItemPayload `json:"items"`
	CustomerChatID   int64             `json:"customer_chat_id"`
	ReceiptFileID    string            `json:"receipt_file_id"`
	DeliveryTimeSlot string            `json:"delivery_time_slot"`
	Status           string            `json:"status"`
	RejectionReason  string            `json:"rejection_reason"`
}

// LineItemPayload is a single order position in an inbound event.
type LineItemPayload struct {
	ProductID   string  `json:"product_id"`
	VariantID   string  `json:"variant_id"`
	ProductName string  `json:"product_name"`
	VariantName string  `json:"variant_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// QueuedResponse acknowledges that an event was handed to the worker.
type QueuedResponse struct {
	Status  string `json:"status"`
	OrderID string `json:"order_id"`
}

// ErrorResponse defines a standard structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// toDomainEvent maps the request DTO to the domain event.
func toDomainEvent(req *OrderEventRequest) *model.OrderEvent {
	order := model.Order{
		ID:               req.Order.ID,
		CustomerName:     req.Order.CustomerName,
		CustomerPhone:    req.Order.CustomerPhone,
		DeliveryAddress:  req.Order.DeliveryAddress,
		TotalAmount:      req.Order.TotalAmount,
		CustomerChatID:   req.Order.CustomerChatID,
		ReceiptFileID:    req.Order.ReceiptFileID,
		DeliveryTimeSlot: req.Order.DeliveryTimeSlot,
		Status:           model.Status(req.Order.Status),
		RejectionReason:  req.Order.RejectionReason,
	}
	for _, item := range req.Order.Items {
		order.Items = append(order.Items, model.LineItem{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			VariantName: item.VariantName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return &model.OrderEvent{
		Type:  model.EventType(req.Type),
		Order: order,
	}
}
