package admin

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"

	"storefront/internal/catalog"
	"storefront/internal/localstore"
	"storefront/internal/notify"
	"storefront/internal/obs"
	"storefront/internal/session"
)

func TestStats(t *testing.T) {
	cat, err := catalog.NewService(catalog.SeedDataset())
	require.NoError(t, err)

	stats := NewService(cat).Stats()
	seed := catalog.SeedDataset()

	assert.Equal(t, len(seed.Products), stats.Products)
	assert.Equal(t, len(seed.Users), stats.Users)
	assert.Equal(t, len(seed.Orders), stats.Orders)

	want := decimal.Zero
	for _, o := range seed.Orders {
		want = want.Add(o.Total)
	}
	assert.True(t, stats.Revenue.Equal(want), "revenue %s, want %s", stats.Revenue, want)
}

func TestStatsEndpointRequiresAdmin(t *testing.T) {
	cat, err := catalog.NewService(catalog.SeedDataset())
	require.NoError(t, err)
	blobs, err := localstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	metrics, err := obs.NewMetrics(otel.Meter("test"))
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := rate.NewLimiter(rate.Every(time.Minute), 100)
	ctx := context.Background()

	sessions := session.NewService(ctx, cat, blobs, notify.NewRecorder(), session.NewSchemeVerifier(), limiter, metrics, logger)

	r := chi.NewRouter()
	NewHandler(NewService(cat), sessions).Routes(r)

	// Anonymous: forbidden.
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// Regular user: still forbidden.
	_, err = sessions.Login(ctx, "user@example.com", "user123")
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// Admin: allowed.
	_, err = sessions.Login(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var stats Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, len(catalog.SeedDataset().Products), stats.Products)
}
