package wishlist

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"storefront/internal/catalog"
	"storefront/internal/localstore"
	"storefront/internal/notify"
	"storefront/internal/obs"
)

func testCatalog(t *testing.T) catalog.Service {
	t.Helper()
	svc, err := catalog.NewService(catalog.Dataset{
		Products: []*catalog.Product{
			{ID: 5, Slug: "mug", Name: "Mug", Price: decimal.NewFromInt(12), Stock: 4, Images: []string{"/mug.jpg"}},
			{ID: 7, Slug: "poster", Name: "Poster", Price: decimal.NewFromInt(18), Stock: 0, Images: []string{"/poster.jpg"}},
		},
	})
	require.NoError(t, err)
	return svc
}

func newTestWishlist(t *testing.T) (Service, *notify.Recorder, localstore.BlobStore) {
	t.Helper()
	blobs, err := localstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	metrics, err := obs.NewMetrics(otel.Meter("test"))
	require.NoError(t, err)
	rec := notify.NewRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(context.Background(), testCatalog(t), blobs, rec, metrics, logger)
	return svc, rec, blobs
}

func TestSetSemantics(t *testing.T) {
	svc, rec, _ := newTestWishlist(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 5))
	err := svc.Add(ctx, 5)
	assert.ErrorIs(t, err, ErrAlreadyWishlisted)

	assert.Equal(t, []int{5}, svc.ProductIDs(), "duplicate add must not grow the set")

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, notify.KindInfo, last.Kind)
	assert.Equal(t, "Already in wishlist", last.Message)
}

func TestOutOfStockProductCanBeWishlisted(t *testing.T) {
	svc, _, _ := newTestWishlist(t)

	require.NoError(t, svc.Add(context.Background(), 7))
	assert.True(t, svc.Contains(7))
}

func TestRemoveIsIdempotent(t *testing.T) {
	svc, _, _ := newTestWishlist(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 5))
	require.NoError(t, svc.Remove(ctx, 5))
	require.NoError(t, svc.Remove(ctx, 5))

	assert.False(t, svc.Contains(5))
	assert.Empty(t, svc.ProductIDs())
}

func TestItemsResolveInInsertionOrder(t *testing.T) {
	svc, _, _ := newTestWishlist(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 7))
	require.NoError(t, svc.Add(ctx, 5))

	items := svc.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Poster", items[0].Name)
	assert.Equal(t, "Mug", items[1].Name)
	assert.Equal(t, "/mug.jpg", items[1].Image)
}

func TestItemsPlaceholderForMissingProduct(t *testing.T) {
	svc, _, _ := newTestWishlist(t)

	require.NoError(t, svc.Add(context.Background(), 404))

	items := svc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, PlaceholderName, items[0].Name)
	assert.True(t, items[0].Price.IsZero())
	assert.Equal(t, PlaceholderImage, items[0].Image)
}

func TestPersistRoundTrip(t *testing.T) {
	svc, _, blobs := newTestWishlist(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 5))
	require.NoError(t, svc.Add(ctx, 7))

	metrics, err := obs.NewMetrics(otel.Meter("test"))
	require.NoError(t, err)
	restored := NewService(ctx, testCatalog(t), blobs, notify.NewRecorder(), metrics, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, []int{5, 7}, restored.ProductIDs())
}

func TestCorruptBlobStartsEmpty(t *testing.T) {
	blobs, err := localstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, blobs.Put(ctx, "wishlist", []byte(`"nope"`)))

	metrics, err := obs.NewMetrics(otel.Meter("test"))
	require.NoError(t, err)
	svc := NewService(ctx, testCatalog(t), blobs, notify.NewRecorder(), metrics, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Empty(t, svc.ProductIDs())
}

func TestRestoreDeduplicates(t *testing.T) {
	blobs, err := localstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, blobs.Put(ctx, "wishlist", []byte(`[5,5,7]`)))

	metrics, err := obs.NewMetrics(otel.Meter("test"))
	require.NoError(t, err)
	svc := NewService(ctx, testCatalog(t), blobs, notify.NewRecorder(), metrics, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, []int{5, 7}, svc.ProductIDs())
}
