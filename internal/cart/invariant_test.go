package cart

import (
	"context"
	"testing"

	"pgregory.net/rapid"
)

// The stock invariant must hold for every sequence of mutations: no
// entry's quantity ever exceeds its product's stock, quantities stay
// positive, and Count always equals the sum of quantities.
func TestStockInvariantHolds(t *testing.T) {
	stocks := map[int]int{1: 5, 2: 3, 3: 0}

	rapid.Check(t, func(rt *rapid.T) {
		svc, _, _ := newTestCart(t)
		ctx := context.Background()
		model := map[int]int{}

		steps := rapid.IntRange(1, 50).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			productID := rapid.SampledFrom([]int{1, 2, 3, 999}).Draw(rt, "product")
			qty := rapid.IntRange(-2, 8).Draw(rt, "qty")

			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0:
				if err := svc.Add(ctx, productID, qty); err == nil {
					model[productID] += qty
				}
			case 1:
				if err := svc.Remove(ctx, productID); err == nil {
					delete(model, productID)
				}
			case 2:
				if err := svc.UpdateQuantity(ctx, productID, qty); err == nil {
					if qty <= 0 {
						delete(model, productID)
					} else if _, present := model[productID]; present {
						model[productID] = qty
					}
				}
			case 3:
				if err := svc.Clear(ctx); err == nil {
					model = map[int]int{}
				}
			}

			total := 0
			for _, e := range svc.Entries() {
				if e.Quantity < 1 {
					rt.Fatalf("entry %d has quantity %d", e.ProductID, e.Quantity)
				}
				if stock, known := stocks[e.ProductID]; known && e.Quantity > stock {
					rt.Fatalf("entry %d quantity %d exceeds stock %d", e.ProductID, e.Quantity, stock)
				}
				total += e.Quantity
			}
			if total != svc.Count() {
				rt.Fatalf("Count() = %d, sum of quantities = %d", svc.Count(), total)
			}
		}

		entries := svc.Entries()
		if len(entries) != len(model) {
			rt.Fatalf("cart has %d entries, model has %d", len(entries), len(model))
		}
		for _, e := range entries {
			if model[e.ProductID] != e.Quantity {
				rt.Fatalf("entry %d: cart quantity %d, model quantity %d", e.ProductID, e.Quantity, model[e.ProductID])
			}
		}
	})
}
