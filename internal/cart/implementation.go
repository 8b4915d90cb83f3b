// internal/cart/implementation.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"storefront/internal/catalog"
	"storefront/internal/localstore"
	"storefront/internal/notify"
	"storefront/internal/obs"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrOutOfStock      = errors.New("not enough stock available")
	ErrProductNotFound = errors.New("product not found")
)

// blobKey is the durable-storage key owned by the cart store.
const blobKey = "cart"

// service implements the Service interface. Entries keep insertion
// order so views stay stable across mutations.
type service struct {
	mu      sync.Mutex
	entries []Entry

	catalog catalog.Service
	blobs   localstore.BlobStore
	sink    notify.Sink
	metrics *obs.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewService creates a cart store, restoring any persisted entries.
// A blob that fails to decode is discarded and the cart starts empty.
func NewService(ctx context.Context, cat catalog.Service, blobs localstore.BlobStore, sink notify.Sink, metrics *obs.Metrics, logger *slog.Logger) Service {
	s := &service{
		catalog: cat,
		blobs:   blobs,
		sink:    sink,
		metrics: metrics,
		logger:  logger,
		tracer:  otel.Tracer("storefront/cart"),
	}
	s.restore(ctx)
	return s
}

func (s *service) restore(ctx context.Context) {
	data, ok, err := s.blobs.Get(ctx, blobKey)
	if err != nil {
		s.logger.Error("restore cart", "err", err)
		return
	}
	if !ok {
		return
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Error("discarding corrupt cart blob", "err", err)
		return
	}
	// Sanitize defensively; the one-entry-per-product and stock
	// invariants hold from here on. Duplicate lines merge into the
	// first, quantities clamp to the product's stock.
	index := make(map[int]int, len(entries))
	for _, e := range entries {
		if e.Quantity < 1 {
			continue
		}
		if i, dup := index[e.ProductID]; dup {
			s.entries[i].Quantity += e.Quantity
		} else {
			index[e.ProductID] = len(s.entries)
			s.entries = append(s.entries, e)
		}
	}
	for i, e := range s.entries {
		product, ok := s.catalog.ProductByID(e.ProductID)
		if !ok {
			continue
		}
		if e.Quantity > product.Stock {
			s.logger.Warn("clamping restored cart entry", "product_id", e.ProductID, "quantity", e.Quantity, "stock", product.Stock)
			s.entries[i].Quantity = product.Stock
		}
	}
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.Quantity >= 1 {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}

// Add inserts a new entry or increments an existing one. The combined
// quantity may never exceed the product's stock.
func (s *service) Add(ctx context.Context, productID, quantity int) error {
	ctx, span := s.tracer.Start(ctx, "cart.add",
		trace.WithAttributes(
			attribute.Int("product.id", productID),
			attribute.Int("quantity", quantity),
		),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.logger.Warn("cart add rejected", "product_id", productID, "quantity", quantity, "reason", "invalid quantity")
		s.sink.Publish(notify.Error("Invalid quantity"))
		s.recordOp(ctx, "add", false)
		return ErrInvalidQuantity
	}

	product, ok := s.catalog.ProductByID(productID)
	if !ok {
		s.logger.Warn("cart add rejected", "product_id", productID, "reason", "unknown product")
		s.sink.Publish(notify.Error("Not enough stock available"))
		s.recordOp(ctx, "add", false)
		return ErrProductNotFound
	}

	idx := s.indexOf(productID)
	current := 0
	if idx >= 0 {
		current = s.entries[idx].Quantity
	}
	if current+quantity > product.Stock {
		s.logger.Warn("cart add rejected", "product_id", productID, "quantity", quantity, "stock", product.Stock, "reason", "out of stock")
		s.sink.Publish(notify.Error("Not enough stock available"))
		s.recordOp(ctx, "add", false)
		return ErrOutOfStock
	}

	if idx >= 0 {
		s.entries[idx].Quantity += quantity
		s.sink.Publish(notify.Success("Updated quantity in cart"))
	} else {
		s.entries = append(s.entries, Entry{ProductID: productID, Quantity: quantity})
		s.sink.Publish(notify.Success("Added to cart"))
	}

	s.persist(ctx)
	s.recordOp(ctx, "add", true)
	s.logger.Info("cart add", "product_id", productID, "quantity", quantity)
	return nil
}

// Remove deletes the entry for productID. Removing an absent product
// is a no-op.
func (s *service) Remove(ctx context.Context, productID int) error {
	ctx, span := s.tracer.Start(ctx, "cart.remove",
		trace.WithAttributes(attribute.Int("product.id", productID)),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(productID); idx >= 0 {
		s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
		s.persist(ctx)
	}

	s.sink.Publish(notify.Success("Removed from cart"))
	s.recordOp(ctx, "remove", true)
	return nil
}

// UpdateQuantity sets the entry's quantity exactly. Zero or negative
// removes the entry; above-stock requests leave it unchanged.
func (s *service) UpdateQuantity(ctx context.Context, productID, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}

	ctx, span := s.tracer.Start(ctx, "cart.update_quantity",
		trace.WithAttributes(
			attribute.Int("product.id", productID),
			attribute.Int("quantity", quantity),
		),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.catalog.ProductByID(productID)
	if !ok {
		s.recordOp(ctx, "update", false)
		return ErrProductNotFound
	}

	if quantity > product.Stock {
		s.logger.Warn("cart update rejected", "product_id", productID, "quantity", quantity, "stock", product.Stock)
		s.sink.Publish(notify.Error("Not enough stock available"))
		s.recordOp(ctx, "update", false)
		return ErrOutOfStock
	}

	if idx := s.indexOf(productID); idx >= 0 {
		s.entries[idx].Quantity = quantity
		s.persist(ctx)
	}

	s.recordOp(ctx, "update", true)
	return nil
}

// Clear removes all entries unconditionally.
func (s *service) Clear(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "cart.clear")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.persist(ctx)
	s.sink.Publish(notify.Success("Cart cleared"))
	s.recordOp(ctx, "clear", true)
	return nil
}

// Items resolves entries against the catalog in insertion order.
func (s *service) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, 0, len(s.entries))
	for _, e := range s.entries {
		product, ok := s.catalog.ProductByID(e.ProductID)
		if !ok {
			items = append(items, Item{
				ID:       e.ProductID,
				Name:     PlaceholderName,
				Price:    decimal.Zero,
				Quantity: e.Quantity,
				Image:    PlaceholderImage,
			})
			continue
		}
		items = append(items, Item{
			ID:            product.ID,
			Name:          product.Name,
			Price:         product.Price,
			DiscountPrice: product.DiscountPrice,
			Quantity:      e.Quantity,
			Image:         product.Images[0],
		})
	}
	return items
}

// Total sums (discount price, else price) times quantity. Entries
// whose product no longer resolves contribute nothing.
func (s *service) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, e := range s.entries {
		product, ok := s.catalog.ProductByID(e.ProductID)
		if !ok {
			continue
		}
		total = total.Add(product.EffectivePrice().Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	return total
}

// Count is the sum of quantities, not the number of entries.
func (s *service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked()
}

// Entries returns a copy of the raw cart lines in insertion order.
func (s *service) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *service) countLocked() int {
	total := 0
	for _, e := range s.entries {
		total += e.Quantity
	}
	return total
}

func (s *service) indexOf(productID int) int {
	for i, e := range s.entries {
		if e.ProductID == productID {
			return i
		}
	}
	return -1
}

// persist writes the whole cart through to durable storage. A write
// failure loses at most this mutation; the in-memory state stands.
func (s *service) persist(ctx context.Context) {
	entries := s.entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		s.logger.Error("marshal cart", "err", err)
		return
	}
	if err := s.blobs.Put(ctx, blobKey, data); err != nil {
		s.logger.Error("persist cart", "err", err)
	}
}

func (s *service) recordOp(ctx context.Context, op string, ok bool) {
	s.metrics.StoreOps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("store", "cart"),
		attribute.String("op", op),
		attribute.Bool("ok", ok),
	))
	s.metrics.CartItems.Record(ctx, int64(s.countLocked()))
}
