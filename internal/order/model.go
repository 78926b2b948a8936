package order

import "time"

type Item struct {
	MenuItemID     string `json:"menuItemId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

type Order struct {
	ID            string `json:"orderId"`
	UserEmail     string `json:"userEmail"`
	Status        Status `json:"status"`
	SubtotalCents int64  `json:"subtotalCents"`
	Items         []Item `json:"items"`

	StripeSessionID       string `json:"stripeSessionId,omitempty"`
	StripePaymentIntentID string `json:"stripePaymentIntentId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
