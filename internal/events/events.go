package events

import "time"

type OrderLine struct {
	MenuItemID     string `json:"menuItemId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// OrderCreated is published when checkout snapshots the cart into a
// pending order.
type OrderCreated struct {
	EventType     string      `json:"eventType"`
	OrderID       string      `json:"orderId"`
	UserEmail     string      `json:"userEmail"`
	SubtotalCents int64       `json:"subtotalCents"`
	Items         []OrderLine `json:"items"`
	Timestamp     time.Time   `json:"timestamp"`
}

// OrderPaid is published on the first pending -> paid transition.
type OrderPaid struct {
	EventType string    `json:"eventType"`
	OrderID   string    `json:"orderId"`
	UserEmail string    `json:"userEmail"`
	Timestamp time.Time `json:"timestamp"`
}
