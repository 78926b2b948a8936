package menu

import "time"

type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Position int    `json:"position"`
}

type Item struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"categoryId"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"priceCents"`
	IsAvailable bool      `json:"isAvailable"`
	Position    int       `json:"position"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Sizes  []Size  `json:"sizes,omitempty"`
	Addons []Addon `json:"addons,omitempty"`
}

// Size is a priced variant of an item, e.g. "Large" at +300 cents.
type Size struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	DeltaCents int64  `json:"deltaCents"`
}

type Addon struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	PriceCents int64  `json:"priceCents"`
}

// Section is one category together with its items, in display order.
type Section struct {
	Category Category `json:"category"`
	Items    []Item   `json:"items"`
}
