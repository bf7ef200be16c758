package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/breedkit/logger"
)

// MeterName is the instrumentation scope of the breeding instruments.
const MeterName = "github.com/kbukum/breedkit/breeder"

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name reported in the resource.
	ServiceName string
	// ServiceVersion is the version reported in the resource.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the breeding instruments.
type Metrics struct {
	produced      metric.Int64Counter
	produceCalls  metric.Int64Counter
	chunkDuration metric.Float64Histogram
	stalls        metric.Int64Counter
	generations   metric.Int64Counter
}

// NewMetrics creates the breeding instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	produced, err := meter.Int64Counter("breed.individuals.produced",
		metric.WithDescription("Individuals produced by root sources"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating breed.individuals.produced counter: %w", err)
	}

	produceCalls, err := meter.Int64Counter("breed.produce.calls",
		metric.WithDescription("Produce calls made on root sources"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating breed.produce.calls counter: %w", err)
	}

	chunkDuration, err := meter.Float64Histogram("breed.chunk.duration",
		metric.WithDescription("Time taken to fill one thread's chunk"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating breed.chunk.duration histogram: %w", err)
	}

	stalls, err := meter.Int64Counter("breed.stalls",
		metric.WithDescription("Chunks abandoned because the root produced nothing"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating breed.stalls counter: %w", err)
	}

	generations, err := meter.Int64Counter("breed.generations",
		metric.WithDescription("Generations bred"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating breed.generations counter: %w", err)
	}

	return &Metrics{
		produced:      produced,
		produceCalls:  produceCalls,
		chunkDuration: chunkDuration,
		stalls:        stalls,
		generations:   generations,
	}, nil
}

// RecordChunk records one filled (or abandoned) chunk.
func (m *Metrics) RecordChunk(ctx context.Context, subpop, produced, calls int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Int(AttrSubpop, subpop))
	m.produced.Add(ctx, int64(produced), attrs)
	m.produceCalls.Add(ctx, int64(calls), attrs)
	m.chunkDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordStall records a root source that produced nothing.
func (m *Metrics) RecordStall(ctx context.Context, subpop int) {
	if m == nil {
		return
	}
	m.stalls.Add(ctx, 1, metric.WithAttributes(attribute.Int(AttrSubpop, subpop)))
}

// RecordGeneration records a completed generation.
func (m *Metrics) RecordGeneration(ctx context.Context) {
	if m == nil {
		return
	}
	m.generations.Add(ctx, 1)
}
