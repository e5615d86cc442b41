package telemetry

import (
	"context"
	"testing"
)

func TestEnabled(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	if Enabled() {
		t.Error("Enabled() = true without an endpoint")
	}

	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "http://localhost:4318/v1/traces")
	if !Enabled() {
		t.Error("Enabled() = false with a traces endpoint")
	}
}

func TestTracersWithoutSetup(t *testing.T) {
	ctx := context.Background()
	_, span := Tracer("test").Start(ctx, "span")
	span.End()

	_, span = NoopTracer().Start(ctx, "span")
	if span.SpanContext().IsValid() {
		t.Error("NoopTracer() produced a recording span context")
	}
	span.End()
}
