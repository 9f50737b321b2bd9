package cart

import "github.com/marketflow/storefront-service-go/internal/catalog"

// LineItem is one cart entry: a product reference, its quantity and
// the product snapshot copied from the catalog at add-time. The
// snapshot is never refreshed, so later catalog changes do not affect
// items already in the cart.
type LineItem struct {
	ProductID int             `json:"productId"`
	Quantity  int             `json:"quantity"`
	Product   catalog.Product `json:"product"`
}

func (li LineItem) lineTotal() float64 {
	return li.Product.Price * float64(li.Quantity)
}
