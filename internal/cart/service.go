// internal/cart/service.go
package cart

import (
	"context"

	"github.com/shopspring/decimal"
)

// Service defines the interface for the cart store.
//
// Mutations are write-through: every successful change is persisted
// before the call returns. Validation failures leave the cart exactly
// as it was and are additionally surfaced to the user through the
// notification sink.
type Service interface {
	Add(ctx context.Context, productID, quantity int) error
	Remove(ctx context.Context, productID int) error
	UpdateQuantity(ctx context.Context, productID, quantity int) error
	Clear(ctx context.Context) error

	Items() []Item
	Total() decimal.Decimal
	Count() int
	Entries() []Entry
}
