package model

// ProductVariant is a named variant (flavor, size) of a catalog product.
type ProductVariant struct {
	ID   string
	Name string
}

// Product is the catalog projection the notifier reads: just enough to
// backfill variant names in order line items.
type Product struct {
	ID       string
	Name     string
	Variants []ProductVariant
}

// Customer is a registry entry keyed by the Telegram chat id.
type Customer struct {
	ChatID int64
	Name   string
	Phone  string
}
