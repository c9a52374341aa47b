// Package telemetry provides OpenTelemetry initialization and the validation
// instruments exported by xnumber.
package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.32.0"
)

const (
	serviceName    = "xnumber"
	serviceVersion = "1.0.0"

	defaultMetricInterval  = 30 * time.Second
	defaultShutdownTimeout = 5 * time.Second
)

// Config defines OpenTelemetry configuration parameters.
type Config struct {
	OTLPEndpoint    string        `yaml:"otlpEndpoint" json:"otlpEndpoint"`
	ServiceName     string        `yaml:"serviceName" json:"serviceName"`
	Environment     string        `yaml:"environment" json:"environment"`
	MetricInterval  time.Duration `yaml:"metricInterval" json:"metricInterval"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" json:"shutdownTimeout"`
}

// Enabled reports whether an exporter endpoint is configured.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.OTLPEndpoint) != ""
}

// WithDefaults fills the zero fields of c.
func (c Config) WithDefaults() Config {
	if strings.TrimSpace(c.ServiceName) == "" {
		c.ServiceName = serviceName
	}
	if strings.TrimSpace(c.Environment) == "" {
		c.Environment = "development"
	}
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	if c.MetricInterval <= 0 {
		c.MetricInterval = defaultMetricInterval
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
	return c
}

// Provider manages the OpenTelemetry meter provider (metrics only).
type Provider struct {
	meterProvider *sdkmetric.MeterProvider
	config        Config
}

// NewProvider initializes a telemetry provider. Without an endpoint the
// provider hands out meters from the global (no-op by default) provider.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	cfg = cfg.WithDefaults()
	if !cfg.Enabled() {
		return &Provider{config: cfg}, nil
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	mp, err := newMeterProvider(ctx, res, cfg)
	if err != nil {
		return nil, fmt.Errorf("create meter provider: %w", err)
	}
	otel.SetMeterProvider(mp)
	return &Provider{meterProvider: mp, config: cfg}, nil
}

// Config returns the effective configuration.
func (p *Provider) Config() Config {
	return p.config
}

// Shutdown flushes and stops the meter provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.meterProvider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, p.config.ShutdownTimeout)
	defer cancel()
	if err := p.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown meter: %w", err)
	}
	return nil
}

// Meter returns a meter with the given name.
func (p *Provider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if p == nil || p.meterProvider == nil {
		return otel.Meter(name, opts...)
	}
	return p.meterProvider.Meter(name, opts...)
}

func newResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(serviceVersion),
			attribute.String("environment", cfg.Environment),
		),
		resource.WithProcessRuntimeName(),
		resource.WithProcessRuntimeVersion(),
	)
	if err != nil {
		return nil, fmt.Errorf("create telemetry resource: %w", err)
	}
	return res, nil
}

func newMeterProvider(ctx context.Context, res *resource.Resource, cfg Config) (*sdkmetric.MeterProvider, error) {
	host, insecure := parseEndpoint(cfg.OTLPEndpoint)
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(host)}
	if insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create metric exporter: %w", err)
	}
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(cfg.MetricInterval),
		)),
		sdkmetric.WithView(histogramViews()...),
	), nil
}

// histogramViews sets explicit buckets for batch durations, which range from
// sub-millisecond single values to multi-second imports.
func histogramViews() []sdkmetric.View {
	return []sdkmetric.View{
		sdkmetric.NewView(
			sdkmetric.Instrument{Name: MetricBatchDuration, Kind: sdkmetric.InstrumentKindHistogram},
			sdkmetric.Stream{Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
				Boundaries: []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000, 5000},
			}},
		),
	}
}

// parseEndpoint strips the scheme from endpoint, since the OTLP HTTP exporter
// expects host:port. Only an https scheme keeps TLS enabled.
func parseEndpoint(endpoint string) (string, bool) {
	endpoint = strings.TrimSpace(endpoint)
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimSuffix(strings.TrimPrefix(endpoint, "https://"), "/"), false
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimSuffix(strings.TrimPrefix(endpoint, "http://"), "/"), true
	default:
		return strings.TrimSuffix(endpoint, "/"), true
	}
}
