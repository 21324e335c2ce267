// Package tracing sets up OpenTelemetry distributed tracing for the service.
package tracing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/okian/moonsurvival/pkg/logger"
)

const (
	exporterTimeout   = 10 * time.Second
	batchTimeout      = 5 * time.Second
	maxExportBatch    = 512
	serviceVersion    = "1.0.0"
	defaultTracerName = "moonsurvival"
)

// Tracing configuration errors.
var (
	ErrMissingServiceName = errors.New("tracing: service name is required")
	ErrInvalidSampling    = errors.New("tracing: sampling rate must be between 0 and 1")
)

// Config holds the configuration for distributed tracing.
type Config struct {
	// ServiceName identifies this service in traces.
	ServiceName string

	// Enabled controls whether spans are exported.
	Enabled bool

	// OTLPEndpoint is the host:port of the OTLP HTTP collector.
	OTLPEndpoint string

	// SamplingRate is the fraction of traces to sample (0.0 to 1.0).
	SamplingRate float64

	// Insecure disables TLS for the collector connection.
	Insecure bool
}

// Provider manages the OpenTelemetry tracer provider.
type Provider struct {
	tp     *sdktrace.TracerProvider
	config Config
	logger logger.Logger
}

// Option applies a configuration option to the Provider.
type Option func(*Provider)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l logger.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewProvider creates and installs a tracer provider. A disabled config
// yields a no-op provider that falls back to the global tracer.
func NewProvider(ctx context.Context, cfg Config, opts ...Option) (*Provider, error) {
	p := &Provider{config: cfg}
	for _, opt := range opts {
		opt(p)
	}

	if !cfg.Enabled {
		p.info(ctx, "tracing disabled")
		return p, nil
	}

	if cfg.ServiceName == "" {
		return nil, ErrMissingServiceName
	}
	if cfg.SamplingRate < 0 || cfg.SamplingRate > 1 {
		return nil, fmt.Errorf("%w, got %f", ErrInvalidSampling, cfg.SamplingRate)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(serviceVersion),
			attribute.String("component", "ranking"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	p.tp = sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(samplerFor(cfg.SamplingRate)),
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(batchTimeout),
			sdktrace.WithMaxExportBatchSize(maxExportBatch),
		),
	)

	otel.SetTracerProvider(p.tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	p.info(ctx, "tracing initialized",
		logger.String("service", cfg.ServiceName),
		logger.String("endpoint", cfg.OTLPEndpoint),
		logger.Float64("sampling_rate", cfg.SamplingRate),
	)

	return p, nil
}

func newExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	opts := []otlptracehttp.Option{}
	if cfg.OTLPEndpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.OTLPEndpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	ctx, cancel := context.WithTimeout(ctx, exporterTimeout)
	defer cancel()

	return otlptracehttp.New(ctx, opts...)
}

func samplerFor(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

// Shutdown flushes pending spans and stops the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tp == nil {
		return nil
	}

	p.info(ctx, "shutting down tracer provider")
	if err := p.tp.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}
	return nil
}

// Tracer returns a tracer for the given name.
func (p *Provider) Tracer(name string) trace.Tracer {
	if p.tp == nil {
		return otel.Tracer(name)
	}
	return p.tp.Tracer(name)
}

// IsEnabled reports whether spans are exported.
func (p *Provider) IsEnabled() bool {
	return p.config.Enabled
}

func (p *Provider) info(ctx context.Context, msg string, fields ...logger.Field) {
	if p.logger != nil {
		p.logger.Info(ctx, msg, fields...)
	}
}
