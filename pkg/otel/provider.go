package otel

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"

	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.38.0"
)

const instrumentationName = "github.com/adrianliechti/contentkit"

var (
	EnableDebug     = false
	EnableTelemetry = false
)

func init() {
	EnableDebug = os.Getenv("DEBUG") != ""
	EnableTelemetry = os.Getenv("TELEMETRY") != ""
}

// protocol returns the OTLP protocol configured for signal, falling back to
// the shared setting.
func protocol(signal string) string {
	if p := os.Getenv("OTEL_EXPORTER_OTLP_" + strings.ToUpper(signal) + "_PROTOCOL"); p != "" {
		return strings.ToLower(p)
	}

	return strings.ToLower(os.Getenv("OTEL_EXPORTER_OTLP_PROTOCOL"))
}

// sampleRatio reads TELEMETRY_SAMPLE_RATIO, defaulting to sampling everything.
func sampleRatio() float64 {
	ratio, err := strconv.ParseFloat(os.Getenv("TELEMETRY_SAMPLE_RATIO"), 64)

	if err != nil || ratio < 0 || ratio > 1 {
		return 1
	}

	return ratio
}

type Observable interface {
	otelSetup()
}

// Setup installs OTLP exporters for logs, metrics and traces when telemetry
// is enabled. The returned function flushes and stops them.
func Setup(ctx context.Context, serviceName, serviceVersion string) (func(context.Context) error, error) {
	if !EnableTelemetry {
		return func(context.Context) error { return nil }, nil
	}

	resource, err := sdkresource.New(ctx,
		sdkresource.WithFromEnv(),
		sdkresource.WithTelemetrySDK(),
		sdkresource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)

	if err != nil {
		return nil, err
	}

	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error

		for _, fn := range shutdowns {
			errs = append(errs, fn(ctx))
		}

		return errors.Join(errs...)
	}

	for _, setup := range []func(context.Context, *sdkresource.Resource, string) (func(context.Context) error, error){
		setupLogger,
		setupMeter,
		setupTracer,
	} {
		fn, err := setup(ctx, resource, serviceVersion)

		if err != nil {
			return nil, errors.Join(err, shutdown(ctx))
		}

		shutdowns = append(shutdowns, fn)
	}

	return shutdown, nil
}
