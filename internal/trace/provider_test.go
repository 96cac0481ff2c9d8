package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

func TestNewProvider_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	p, err := NewProvider(t.Context())
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	_, span := p.Tracer("test").Start(t.Context(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
	assert.NoError(t, p.Shutdown(t.Context()))
}

func TestNewWithExporter_ExportsOnShutdown(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "")
	exp := tracetest.NewInMemoryExporter()
	p := NewWithExporter(exp)
	require.True(t, p.Enabled())

	_, span := p.Tracer("devgrid/internal/grid").Start(t.Context(), "grid.Layout")
	span.End()
	require.NoError(t, p.sdk.ForceFlush(t.Context()))
	t.Cleanup(func() { _ = p.Shutdown(t.Context()) })

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "grid.Layout", spans[0].Name)
	assert.Contains(t, spans[0].Resource.Attributes(), semconv.ServiceNameKey.String("devgrid"))
}

func TestNewWithExporter_ServiceNameFromEnv(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "workbench")
	exp := tracetest.NewInMemoryExporter()
	p := NewWithExporter(exp)

	_, span := p.Tracer("x").Start(t.Context(), "op")
	span.End()
	require.NoError(t, p.sdk.ForceFlush(t.Context()))
	t.Cleanup(func() { _ = p.Shutdown(t.Context()) })

	require.Len(t, exp.GetSpans(), 1)
	assert.Contains(t, exp.GetSpans()[0].Resource.Attributes(), semconv.ServiceNameKey.String("workbench"))
}

func TestNilProvider(t *testing.T) {
	var p *Provider
	assert.False(t, p.Enabled())
	assert.NotNil(t, p.Tracer("x"))
	assert.NoError(t, p.Shutdown(t.Context()))
}
