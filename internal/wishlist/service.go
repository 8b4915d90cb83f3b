// internal/wishlist/service.go
package wishlist

import "context"

// Service defines the interface for the wishlist store: a pure set of
// product ids with no quantity or stock semantics. A product may be
// wishlisted even when out of stock.
type Service interface {
	Add(ctx context.Context, productID int) error
	Remove(ctx context.Context, productID int) error
	Contains(productID int) bool
	Items() []Item
	ProductIDs() []int
}
