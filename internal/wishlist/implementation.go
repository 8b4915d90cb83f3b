// internal/wishlist/implementation.go
package wishlist

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

var ErrAlreadyWishlisted = errors.New("product already in wishlist")

// blobKey is the durable-storage key owned by the wishlist store.
const blobKey = "wishlist"

// service implements Service over an insertion-ordered set.
type service struct {
	mu  sync.Mutex
	ids []int

	catalog catalog.Service
	blobs   localstore.BlobStore
	sink    notify.Sink
	metrics *obs.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewService creates a wishlist store, restoring persisted ids.
// A blob that fails to decode is discarded.
func NewService(ctx context.Context, cat catalog.Service, blobs localstore.BlobStore, sink notify.Sink, metrics *obs.Metrics, logger *slog.Logger) Service {
	s := &service{
		catalog: cat,
		blobs:   blobs,
		sink:    sink,
		metrics: metrics,
		logger:  logger,
		tracer:  otel.Tracer("storefront/wishlist"),
	}
	s.restore(ctx)
	return s
}

func (s *service) restore(ctx context.Context) {
	data, ok, err := s.blobs.Get(ctx, blobKey)
	if err != nil {
		s.logger.Error("restore wishlist", "err", err)
		return
	}
	if !ok {
		return
	}

	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		s.logger.Error("discarding corrupt wishlist blob", "err", err)
		return
	}
	// Deduplicate defensively; the set invariant holds from here on.
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
}

// Add inserts the product id into the set.
func (s *service) Add(ctx context.Context, productID int) error {
	ctx, span := s.tracer.Start(ctx, "wishlist.add",
		trace.WithAttributes(attribute.Int("product.id", productID)),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.containsLocked(productID) {
		s.sink.Publish(notify.Info("Already in wishlist"))
		s.recordOp(ctx, "add", false)
		return ErrAlreadyWishlisted
	}

	s.ids = append(s.ids, productID)
	s.persist(ctx)
	s.sink.Publish(notify.Success("Added to wishlist"))
	s.recordOp(ctx, "add", true)
	return nil
}

// Remove deletes the product id; removing an absent id is a no-op.
func (s *service) Remove(ctx context.Context, productID int) error {
	ctx, span := s.tracer.Start(ctx, "wishlist.remove",
		trace.WithAttributes(attribute.Int("product.id", productID)),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range s.ids {
		if id == productID {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			s.persist(ctx)
			break
		}
	}

	s.sink.Publish(notify.Success("Removed from wishlist"))
	s.recordOp(ctx, "remove", true)
	return nil
}

// Contains is a pure membership test.
func (s *service) Contains(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.containsLocked(productID)
}

// Items resolves the set against the catalog in insertion order.
func (s *service) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, 0, len(s.ids))
	for _, id := range s.ids {
		product, ok := s.catalog.ProductByID(id)
		if !ok {
			items = append(items, Item{
				ID:    id,
				Name:  PlaceholderName,
				Price: decimal.Zero,
				Image: PlaceholderImage,
			})
			continue
		}
		items = append(items, Item{
			ID:            product.ID,
			Name:          product.Name,
			Price:         product.Price,
			DiscountPrice: product.DiscountPrice,
			Image:         product.Images[0],
		})
	}
	return items
}

// ProductIDs returns a copy of the set in insertion order.
func (s *service) ProductIDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *service) containsLocked(productID int) bool {
	for _, id := range s.ids {
		if id == productID {
			return true
		}
	}
	return false
}

func (s *service) persist(ctx context.Context) {
	ids := s.ids
	if ids == nil {
		ids = []int{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		s.logger.Error("marshal wishlist", "err", err)
		return
	}
	if err := s.blobs.Put(ctx, blobKey, data); err != nil {
		s.logger.Error("persist wishlist", "err", err)
	}
}

func (s *service) recordOp(ctx context.Context, op string, ok bool) {
	s.metrics.StoreOps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("store", "wishlist"),
		attribute.String("op", op),
		attribute.Bool("ok", ok),
	))
}
