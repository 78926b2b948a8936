package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thejayadad/seafoodapp/internal/cart"
)

func TestCompute_EmptyCart(t *testing.T) {
	totals := Compute(&cart.Cart{})

	assert.Zero(t, totals.SubtotalCents)
	assert.Zero(t, totals.TaxCents)
	assert.Zero(t, totals.FeesCents)
	assert.Zero(t, totals.TotalCents)
}

func TestCompute_SingleLine(t *testing.T) {
	c := &cart.Cart{Lines: []cart.Line{
		{ID: "l1", MenuItemID: "i1", Name: "Lobster Roll", UnitPriceCents: 1799, Qty: 2},
	}}

	totals := Compute(c)

	assert.Equal(t, int64(3598), totals.SubtotalCents)
	assert.Equal(t, int64(319), totals.TaxCents) // round(3598 * 0.08875)
	assert.Equal(t, int64(0), totals.FeesCents)
	assert.Equal(t, int64(3917), totals.TotalCents)
}

func TestCompute_TotalIsSumOfParts(t *testing.T) {
	carts := []*cart.Cart{
		{},
		{Lines: []cart.Line{{UnitPriceCents: 1, Qty: 1}}},
		{Lines: []cart.Line{{UnitPriceCents: 2499, Qty: 1}, {UnitPriceCents: 899, Qty: 3}}},
		{Lines: []cart.Line{{UnitPriceCents: 1299, Qty: 7}, {UnitPriceCents: 299, Qty: 2}, {UnitPriceCents: 600, Qty: 1}}},
	}

	for _, c := range carts {
		totals := Compute(c)
		assert.Equal(t, totals.SubtotalCents+totals.TaxCents+totals.FeesCents, totals.TotalCents)
		assert.Zero(t, totals.FeesCents)
	}
}

func TestCompute_TaxRounding(t *testing.T) {
	// 100 * 0.08875 = 8.875 -> 9
	c := &cart.Cart{Lines: []cart.Line{{UnitPriceCents: 100, Qty: 1}}}
	assert.Equal(t, int64(9), Compute(c).TaxCents)

	// 200 * 0.08875 = 17.75 -> 18
	c = &cart.Cart{Lines: []cart.Line{{UnitPriceCents: 200, Qty: 1}}}
	assert.Equal(t, int64(18), Compute(c).TaxCents)

	// 1000 * 0.08875 = 88.75 -> 89
	c = &cart.Cart{Lines: []cart.Line{{UnitPriceCents: 1000, Qty: 1}}}
	assert.Equal(t, int64(89), Compute(c).TaxCents)
}
