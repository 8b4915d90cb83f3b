// cmd/storefront/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"storefront/internal/admin"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/localstore"
	"storefront/internal/notify"
	"storefront/internal/obs"
	"storefront/internal/session"
	"storefront/internal/wishlist"
)

func main() {
	cfg := config.Load()
	logger := obs.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := obs.InitTracing(ctx, cfg)
	if err != nil {
		logger.Error("init tracing", "err", err)
		os.Exit(1)
	}
	defer tp.Shutdown(context.Background())

	mp, err := obs.InitMetrics(ctx, cfg)
	if err != nil {
		logger.Error("init metrics", "err", err)
		os.Exit(1)
	}
	defer mp.Shutdown(context.Background())

	metrics, err := obs.NewMetrics(mp.Meter("storefront"))
	if err != nil {
		logger.Error("create metrics", "err", err)
		os.Exit(1)
	}

	var blobs localstore.BlobStore
	switch cfg.StorageBackend {
	case "postgres":
		pq, err := localstore.OpenPQStore(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("open postgres blob store", "err", err)
			os.Exit(1)
		}
		defer pq.Close()
		blobs = pq
	default:
		fs, err := localstore.NewFileStore(cfg.DataDir)
		if err != nil {
			logger.Error("open file blob store", "err", err)
			os.Exit(1)
		}
		blobs = fs
	}

	cat, err := catalog.NewService(catalog.SeedDataset())
	if err != nil {
		logger.Error("build catalog", "err", err)
		os.Exit(1)
	}

	bus := notify.NewBus(metrics, logger)
	defer bus.Close()
	go logNotifications(ctx, bus, logger)

	limiter := rate.NewLimiter(rate.Every(cfg.LoginRateInterval), cfg.LoginRateBurst)

	sessions := session.NewService(ctx, cat, blobs, bus, session.NewSchemeVerifier(), limiter, metrics, logger)
	carts := cart.NewService(ctx, cat, blobs, bus, metrics, logger)
	wishlists := wishlist.NewService(ctx, cat, blobs, bus, metrics, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	catalog.NewHandler(cat).Routes(r)
	cart.NewHandler(carts).Routes(r)
	wishlist.NewHandler(wishlists).Routes(r)
	session.NewHandler(sessions).Routes(r)
	admin.NewHandler(admin.NewService(cat), sessions).Routes(r)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	go func() {
		logger.Info("storefront listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}

// logNotifications drains the notification bus so every user-facing
// signal also lands in the structured log.
func logNotifications(ctx context.Context, bus *notify.Bus, logger *slog.Logger) {
	messages, err := bus.Subscribe(ctx)
	if err != nil {
		return
	}
	for msg := range messages {
		var n notify.Notification
		if err := json.Unmarshal(msg.Payload, &n); err == nil {
			logger.Info("notification", "kind", n.Kind, "message", n.Message)
		}
		msg.Ack()
	}
}
