package model

// Status represents the lifecycle state of an order as reported by the
// order backend. The notifier does not drive transitions, it only reacts
// to the value it is handed; unknown values fall through to a generic
// customer message.
type Status string

const (
	StatusNew      Status = "новый"    // The order has just been placed.
	StatusAccepted Status = "принят"   // The order was accepted and scheduled for delivery.
	StatusRejected Status = "отказано" // The order was rejected by an administrator.
)

// LineItem is a single order position.
type LineItem struct {
	ProductID   string
	VariantID   string // Optional.
	ProductName string
	VariantName string // Optional; backfilled from the product catalog when absent.
	Quantity    int
	Price       float64 // Unit price; zero when unknown.
}

// Order carries the subset of the order document the notifier consumes.
// It is technology-agnostic and does not contain any DB or JSON tags.
type Order struct {
	ID              string
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	TotalAmount     float64
	Items           []LineItem

	// CustomerChatID is the Telegram chat of the customer who owns the order.
	CustomerChatID int64

	// ReceiptFileID is an optional reference to the payment receipt in the
	// blob store; empty means no receipt was uploaded.
	ReceiptFileID string

	// DeliveryTimeSlot is a free-form slot like "13:00-14:00".
	DeliveryTimeSlot string

	Status          Status
	RejectionReason string // Optional; only meaningful for rejected orders.
}
