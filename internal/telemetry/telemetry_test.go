package telemetry

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

type fakeExporter struct {
	exported []sdktrace.ReadOnlySpan
	shutdown bool
}

func (f *fakeExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	f.exported = append(f.exported, spans...)
	return nil
}

func (f *fakeExporter) Shutdown(_ context.Context) error {
	f.shutdown = true
	return nil
}

func restoreTracerProvider(t *testing.T) {
	t.Helper()
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
}

func TestInitUsesEnvironmentEndpointAndResourceAttributes(t *testing.T) {
	restoreTracerProvider(t)
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")
	t.Setenv("AOC_ENV", "prod")

	fake := &fakeExporter{}
	capturedEndpoint := ""
	restoreFactory := setExporterFactoryForTest(func(_ context.Context, endpoint string) (sdktrace.SpanExporter, error) {
		capturedEndpoint = endpoint
		return fake, nil
	})
	defer restoreFactory()

	shutdown, err := Init(context.Background(), Settings{
		Endpoint: "http://configured:4318",
		Version:  "v1.2.3-test",
		RunID:    "run-123",
	})
	if err != nil {
		t.Fatalf("init telemetry: %v", err)
	}

	if capturedEndpoint != "http://collector:4318" {
		t.Fatalf("endpoint = %q, want collector endpoint", capturedEndpoint)
	}

	_, span := otel.Tracer("telemetry-test").Start(context.Background(), "startup")
	span.End()

	shutdown()
	if !fake.shutdown {
		t.Fatal("expected exporter shutdown on telemetry shutdown")
	}
	if len(fake.exported) == 0 {
		t.Fatal("expected at least one exported span")
	}

	attrs := fake.exported[0].Resource().Attributes()
	assertResourceAttribute(t, attrs, "service.name", ServiceName)
	assertResourceAttribute(t, attrs, "service.version", "v1.2.3-test")
	assertResourceAttribute(t, attrs, "environment", "prod")
	assertResourceAttribute(t, attrs, "aoc.run_id", "run-123")
}

func TestInitEndpointPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		configured string
		want       string
	}{
		{name: "configured", env: "", configured: "http://configured:4318", want: "http://configured:4318"},
		{name: "default", env: "", configured: "  ", want: DefaultEndpoint},
		{name: "environment", env: "http://env:4318", configured: "http://configured:4318", want: "http://env:4318"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			restoreTracerProvider(t)
			t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", tc.env)

			capturedEndpoint := ""
			restoreFactory := setExporterFactoryForTest(func(_ context.Context, endpoint string) (sdktrace.SpanExporter, error) {
				capturedEndpoint = endpoint
				return &fakeExporter{}, nil
			})
			defer restoreFactory()

			shutdown, err := Init(context.Background(), Settings{Endpoint: tc.configured})
			if err != nil {
				t.Fatalf("init telemetry: %v", err)
			}
			defer shutdown()

			if capturedEndpoint != tc.want {
				t.Fatalf("endpoint = %q, want %q", capturedEndpoint, tc.want)
			}
		})
	}
}

func TestInitFallsBackToConsoleExporter(t *testing.T) {
	restoreTracerProvider(t)
	var out bytes.Buffer
	restoreOut := setConsoleOutForTest(&out)
	defer restoreOut()

	restoreFactory := setExporterFactoryForTest(func(_ context.Context, _ string) (sdktrace.SpanExporter, error) {
		return nil, errors.New("dial failed")
	})
	defer restoreFactory()

	shutdown, err := Init(context.Background(), Settings{})
	if err != nil {
		t.Fatalf("init telemetry: %v", err)
	}

	_, span := otel.Tracer("telemetry-test").Start(
		context.Background(),
		"solver.part",
		trace.WithAttributes(
			attribute.Int("year", 2024),
			attribute.Int("day", 3),
			attribute.Int("part", 2),
			attribute.Float64("elapsed_ms", 1.25),
		),
	)
	span.SetStatus(codes.Error, "operation failed: boom")
	span.End()
	shutdown()

	text := out.String()
	if !strings.Contains(text, "printing spans to stderr") {
		t.Fatalf("missing fallback warning: %q", text)
	}
	want := "[SPAN] solver.part 2024/03 part 2 1.250ms Error: operation failed: boom"
	if !strings.Contains(text, want) {
		t.Fatalf("console output = %q, want line %q", text, want)
	}
}

func TestVersionDefaultsToDev(t *testing.T) {
	if got := versionOrDev("  "); got != "dev" {
		t.Fatalf("version = %q, want dev", got)
	}
	if got := versionOrDev("v1.0.0"); got != "v1.0.0" {
		t.Fatalf("version = %q, want v1.0.0", got)
	}
}

func TestResolveEnvironmentFallback(t *testing.T) {
	t.Setenv("AOC_ENV", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("ENV", "")

	if got := resolveEnvironment(); got != DefaultEnvironment {
		t.Fatalf("environment = %q, want %q", got, DefaultEnvironment)
	}

	t.Setenv("ENV", "Staging")
	if got := resolveEnvironment(); got != "staging" {
		t.Fatalf("environment = %q, want staging", got)
	}
}

func assertResourceAttribute(t *testing.T, attrs []attribute.KeyValue, key, want string) {
	t.Helper()
	for _, attr := range attrs {
		if string(attr.Key) == key {
			if attr.Value.AsString() != want {
				t.Fatalf("resource attr %s = %q, want %q", key, attr.Value.AsString(), want)
			}
			return
		}
	}
	t.Fatalf("resource attribute %q not found", key)
}
