package model

// EventType identifies which lifecycle transition an order event carries.
type EventType string

const (
	EventOrderCreated       EventType = "order.created"
	EventOrderAccepted      EventType = "order.accepted"
	EventOrderStatusChanged EventType = "order.status_changed"
)

// OrderEvent is the unit of work flowing from the API to the worker.
// The order payload is embedded so the worker never needs to read the
// order store.
type OrderEvent struct {
	Type  EventType
	Order Order
}
