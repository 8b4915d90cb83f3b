// internal/wishlist/domain.go
package wishlist

import (
	"github.com/shopspring/decimal"
)

// Item is the resolved view of a wishlisted product. Missing products
// resolve to a placeholder, mirroring the cart's policy.
type Item struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice"`
	Image         string           `json:"image"`
}

// PlaceholderName is the view name for ids whose product is gone.
const PlaceholderName = "Product Not Found"

// PlaceholderImage is the view image for ids whose product is gone.
const PlaceholderImage = "/placeholder.svg"
