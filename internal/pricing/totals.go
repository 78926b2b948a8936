package pricing

import (
	"math"

	"github.com/thejayadad/seafoodapp/internal/cart"
)

// TaxRate is the fixed sales tax applied to the cart subtotal.
const TaxRate = 0.08875

type Totals struct {
	SubtotalCents int64   `json:"subtotalCents"`
	TaxCents      int64   `json:"taxCents"`
	FeesCents     int64   `json:"feesCents"`
	TotalCents    int64   `json:"totalCents"`
	TaxRate       float64 `json:"taxRate"`
}

// Compute derives the cart totals. Tax is rounded to the nearest cent.
// Fees are reserved for delivery/packaging and currently always zero.
func Compute(c *cart.Cart) Totals {
	var subtotal int64
	for _, l := range c.Lines {
		subtotal += l.UnitPriceCents * int64(l.Qty)
	}

	tax := int64(math.Round(float64(subtotal) * TaxRate))
	var fees int64

	return Totals{
		SubtotalCents: subtotal,
		TaxCents:      tax,
		FeesCents:     fees,
		TotalCents:    subtotal + tax + fees,
		TaxRate:       TaxRate,
	}
}
