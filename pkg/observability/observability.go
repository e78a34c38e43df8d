// Package observability wires structured logging, tracing, and metrics for
// the rewrite engine. Without an OTLP endpoint configured, tracing and
// metrics fall back to no-op providers with zero export overhead.
package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const (
	tracerName = "codemend"
	meterName  = "codemend"
)

// Config selects the telemetry backends and log shape.
type Config struct {
	// Service is the service.name resource attribute.
	Service string
	// Env is the deployment environment attribute; empty omits it.
	Env string
	// OTLPEndpoint is the gRPC collector endpoint; empty selects no-op
	// tracing and metrics.
	OTLPEndpoint string
	// LogLevel is debug, info, warn, or error.
	LogLevel string
	// LogFormat is text or json.
	LogFormat string
}

// Providers holds the initialized observability handles.
type Providers struct {
	// Tracer is the named tracer for creating spans.
	Tracer trace.Tracer
	// Meter is the named meter for creating instruments.
	Meter metric.Meter
	// Logger is the context-aware structured logger.
	Logger *slog.Logger
	// Shutdown flushes pending telemetry. Must be called before exit.
	Shutdown func(ctx context.Context) error
}

// Init initializes tracing, metrics, and structured logging.
func Init(cfg Config) (Providers, error) {
	ctx := context.Background()

	res, err := buildResource(cfg)
	if err != nil {
		return Providers{}, fmt.Errorf("build resource: %w", err)
	}

	tracer, tracerShutdown, err := buildTracer(ctx, cfg, res)
	if err != nil {
		return Providers{}, fmt.Errorf("build tracer provider: %w", err)
	}

	meter, meterShutdown, err := buildMeter(ctx, cfg, res)
	if err != nil {
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			err = errors.Join(err, shutdownErr)
		}

		return Providers{}, fmt.Errorf("build meter provider: %w", err)
	}

	logger := BuildLogger(cfg)

	shutdown := func(ctx context.Context) error {
		return errors.Join(tracerShutdown(ctx), meterShutdown(ctx))
	}

	return Providers{Tracer: tracer, Meter: meter, Logger: logger, Shutdown: shutdown}, nil
}

func buildResource(cfg Config) (*resource.Resource, error) {
	attrs := []resource.Option{
		resource.WithAttributes(semconv.ServiceName(cfg.Service)),
	}

	if cfg.Env != "" {
		attrs = append(attrs, resource.WithAttributes(semconv.DeploymentEnvironment(cfg.Env)))
	}

	res, err := resource.New(context.Background(), attrs...)
	if err != nil {
		return nil, fmt.Errorf("resource: %w", err)
	}

	return res, nil
}

func buildTracer(
	ctx context.Context, cfg Config, res *resource.Resource,
) (trace.Tracer, func(context.Context) error, error) {
	if cfg.OTLPEndpoint == "" {
		return nooptrace.NewTracerProvider().Tracer(tracerName), noopShutdown, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("otlp trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	return provider.Tracer(tracerName), provider.Shutdown, nil
}

func buildMeter(
	ctx context.Context, cfg Config, res *resource.Resource,
) (metric.Meter, func(context.Context) error, error) {
	if cfg.OTLPEndpoint == "" {
		return noopmetric.NewMeterProvider().Meter(meterName), noopShutdown, nil
	}

	exporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("otlp metric exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(provider)

	return provider.Meter(meterName), provider.Shutdown, nil
}

func noopShutdown(_ context.Context) error {
	return nil
}

// BuildLogger constructs the structured logger described by the config,
// wrapped so trace context flows into every record.
func BuildLogger(cfg Config) *slog.Logger {
	level := parseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(NewTracingHandler(handler, cfg.Service, cfg.Env))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
