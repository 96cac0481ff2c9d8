// Package trace wires OpenTelemetry for devgrid. Grid operations are traced
// through the tracer handed out here; spans go to an OTLP/HTTP collector
// when one is configured and nowhere otherwise.
package trace

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const defaultServiceName = "devgrid"

// Provider hands out tracers and owns the exporter pipeline, if any.
type Provider struct {
	provider oteltrace.TracerProvider
	sdk      *sdktrace.TracerProvider
}

// NewProvider exports to OTEL_EXPORTER_OTLP_ENDPOINT when it is set.
// Without an endpoint the returned provider records nothing.
func NewProvider(ctx context.Context) (*Provider, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return &Provider{provider: noop.NewTracerProvider()}, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(), // For local dev; make configurable
	)
	if err != nil {
		return nil, err
	}
	return NewWithExporter(exporter), nil
}

// NewWithExporter batches spans to exporter under the service name from
// OTEL_SERVICE_NAME (default "devgrid").
func NewWithExporter(exporter sdktrace.SpanExporter) *Provider {
	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	sdk := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return &Provider{provider: sdk, sdk: sdk}
}

// Enabled reports whether spans leave the process.
func (p *Provider) Enabled() bool {
	return p != nil && p.sdk != nil
}

// Tracer returns a named tracer.
func (p *Provider) Tracer(name string) oteltrace.Tracer {
	if p == nil {
		return noop.NewTracerProvider().Tracer(name)
	}
	return p.provider.Tracer(name)
}

// Install makes p the global tracer provider.
func (p *Provider) Install() {
	if p != nil {
		otel.SetTracerProvider(p.provider)
	}
}

// Shutdown flushes and closes the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}
