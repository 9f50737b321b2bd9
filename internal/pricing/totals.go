package pricing

import "github.com/marketflow/storefront-service-go/internal/cart"

// DefaultTaxRate is applied when the caller does not override it.
const DefaultTaxRate = 0.08

// Totals is the derived breakdown for a cart snapshot. All figures
// are non-negative; currency rounding is the display layer's job.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// ComputeTotals derives the totals breakdown from a cart snapshot,
// a shipping cost and a discount amount. The discount is capped at
// the subtotal so the taxable amount and total never go negative.
// Pure: identical inputs always yield identical outputs.
func ComputeTotals(items []cart.LineItem, shipping, discount, taxRate float64) Totals {
	subtotal := 0.0
	for _, it := range items {
		subtotal += it.Product.Price * float64(it.Quantity)
	}
	subtotal = max(0, subtotal)

	capped := min(discount, subtotal)
	taxable := subtotal - capped
	tax := max(0, taxable*taxRate)
	total := max(0, taxable+tax+shipping)

	return Totals{
		Subtotal: subtotal,
		Discount: capped,
		Tax:      tax,
		Shipping: shipping,
		Total:    total,
	}
}
