// internal/obs/telemetry.go
package obs

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"

	"storefront/internal/config"
)

// InitTracing configures the global tracer provider with an OTLP/HTTP
// exporter. The returned provider must be shut down on exit.
func InitTracing(ctx context.Context, cfg *config.Config) (*sdktrace.TracerProvider, error) {
	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp, nil
}

// InitMetrics configures the global meter provider with an OTLP/HTTP
// exporter. The returned provider must be shut down on exit.
func InitMetrics(ctx context.Context, cfg *config.Config) (*sdkmetric.MeterProvider, error) {
	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

func newResource(ctx context.Context, cfg *config.Config) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}
	return res, nil
}

// Metrics holds the application-level instruments shared by the stores.
type Metrics struct {
	StoreOps      metric.Int64Counter
	CartItems     metric.Int64Gauge
	Notifications metric.Int64Counter
}

// NewMetrics registers the storefront instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	storeOps, err := meter.Int64Counter("storefront.store.operations",
		metric.WithDescription("Store operations by store and outcome"))
	if err != nil {
		return nil, err
	}
	cartItems, err := meter.Int64Gauge("storefront.cart.items",
		metric.WithDescription("Total quantity of items in the cart"))
	if err != nil {
		return nil, err
	}
	notifications, err := meter.Int64Counter("storefront.notifications",
		metric.WithDescription("Notifications published by kind"))
	if err != nil {
		return nil, err
	}
	return &Metrics{
		StoreOps:      storeOps,
		CartItems:     cartItems,
		Notifications: notifications,
	}, nil
}
