// Package telemetry installs the OpenTelemetry tracer provider used for
// solver part spans.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	// ServiceName is reported as service.name on every span.
	ServiceName = "aoc"
	// DefaultEnvironment is used when no environment variable is configured.
	DefaultEnvironment = "dev"
	// DefaultEndpoint is used when neither the environment nor config names one.
	DefaultEndpoint = "http://localhost:4318"
	// FlushTimeout bounds the final export when the run ends.
	FlushTimeout = 5 * time.Second
	// BatchSize caps one export. A full year is at most 50 part spans.
	BatchSize = 64
)

// Settings configures one run's tracer provider.
type Settings struct {
	// Endpoint is the configured OTLP HTTP endpoint.
	// OTEL_EXPORTER_OTLP_ENDPOINT overrides it.
	Endpoint string
	// Version is reported as service.version.
	Version string
	// RunID ties spans to the run's log file.
	RunID string
}

var (
	exporterFactory = func(ctx context.Context, endpoint string) (sdktrace.SpanExporter, error) {
		return otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	}

	consoleOut io.Writer = os.Stderr
)

// Init installs a global tracer provider for the run and returns a shutdown
// func that flushes pending spans. When the OTLP exporter cannot be built,
// spans are printed to stderr instead.
func Init(ctx context.Context, settings Settings) (func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}

	endpoint := resolveEndpoint(settings.Endpoint)
	exporter, err := exporterFactory(ctx, endpoint)
	if err != nil {
		fmt.Fprintf(consoleOut, "warning: OTLP exporter unavailable for %s (%v); printing spans to stderr\n", endpoint, err)
		exporter = &consoleExporter{out: consoleOut}
	}

	attrs := []attribute.KeyValue{
		attribute.String("service.name", ServiceName),
		attribute.String("service.version", versionOrDev(settings.Version)),
		attribute.String("environment", resolveEnvironment()),
	}
	if runID := strings.TrimSpace(settings.RunID); runID != "" {
		attrs = append(attrs, attribute.String("aoc.run_id", runID))
	}
	res, err := resource.New(ctx, resource.WithAttributes(attrs...))
	if err != nil {
		return nil, fmt.Errorf("create telemetry resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter, sdktrace.WithMaxExportBatchSize(BatchSize)),
	)
	otel.SetTracerProvider(provider)

	var once sync.Once
	return func() {
		once.Do(func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), FlushTimeout)
			defer cancel()
			if err := provider.Shutdown(flushCtx); err != nil {
				otel.Handle(err)
			}
		})
	}, nil
}

func resolveEndpoint(configured string) string {
	if endpoint := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")); endpoint != "" {
		return endpoint
	}
	if endpoint := strings.TrimSpace(configured); endpoint != "" {
		return endpoint
	}
	return DefaultEndpoint
}

func resolveEnvironment() string {
	for _, key := range []string{"AOC_ENV", "ENVIRONMENT", "ENV"} {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return strings.ToLower(value)
		}
	}
	return DefaultEnvironment
}

func versionOrDev(version string) string {
	if version = strings.TrimSpace(version); version == "" {
		return "dev"
	}
	return version
}

// consoleExporter prints one line per span, leading with the solver key when
// the span carries one.
type consoleExporter struct {
	out io.Writer
}

func (e *consoleExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	if e == nil || e.out == nil {
		return nil
	}
	for _, span := range spans {
		if _, err := fmt.Fprintln(e.out, formatSpan(span)); err != nil {
			return err
		}
	}
	return nil
}

func (e *consoleExporter) Shutdown(context.Context) error {
	return nil
}

func formatSpan(span sdktrace.ReadOnlySpan) string {
	var year, day, part int64
	elapsed := -1.0
	for _, attr := range span.Attributes() {
		switch attr.Key {
		case "year":
			year = attr.Value.AsInt64()
		case "day":
			day = attr.Value.AsInt64()
		case "part":
			part = attr.Value.AsInt64()
		case "elapsed_ms":
			elapsed = attr.Value.AsFloat64()
		}
	}

	line := "[SPAN] " + span.Name()
	if year > 0 && day > 0 {
		line += fmt.Sprintf(" %d/%02d part %d", year, day, part)
	}
	if elapsed >= 0 {
		line += fmt.Sprintf(" %.3fms", elapsed)
	} else {
		line += " " + span.EndTime().Sub(span.StartTime()).String()
	}
	line += " " + span.Status().Code.String()
	if desc := span.Status().Description; desc != "" {
		line += ": " + desc
	}
	return line
}

func setExporterFactoryForTest(factory func(context.Context, string) (sdktrace.SpanExporter, error)) func() {
	previous := exporterFactory
	exporterFactory = factory
	return func() {
		exporterFactory = previous
	}
}

func setConsoleOutForTest(out io.Writer) func() {
	previous := consoleOut
	consoleOut = out
	return func() {
		consoleOut = previous
	}
}
