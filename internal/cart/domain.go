// internal/cart/domain.go
package cart

import (
	"github.com/shopspring/decimal"
)

// Entry is one persisted cart line: a product and how many of it.
// Quantity is always at least 1; an entry that would drop to zero is
// removed instead of stored.
type Entry struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// Item is the resolved view of an Entry, ready for presentation.
// When the product no longer resolves against the catalog the view is
// a placeholder rather than a failure.
type Item struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice"`
	Quantity      int              `json:"quantity"`
	Image         string           `json:"image"`
}

// PlaceholderName is the view name for entries whose product is gone.
const PlaceholderName = "Product Not Found"

// PlaceholderImage is the view image for entries whose product is gone.
const PlaceholderImage = "/placeholder.svg"
