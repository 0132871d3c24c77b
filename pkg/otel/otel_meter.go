package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/instrumentation"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
)

// upload sizes in bytes, up to the 32MB request limit
var uploadBoundaries = []float64{
	64 << 10, 256 << 10, 1 << 20, 4 << 20, 8 << 20, 16 << 20, 32 << 20,
}

func setupMeter(ctx context.Context, resource *sdkresource.Resource, version string) (func(context.Context) error, error) {
	var err error
	var exporter sdkmetric.Exporter

	if protocol("metrics") == "grpc" {
		exporter, err = otlpmetricgrpc.New(ctx)
	} else {
		exporter, err = otlpmetrichttp.New(ctx)
	}

	if err != nil {
		return nil, err
	}

	uploads := sdkmetric.NewView(
		sdkmetric.Instrument{
			Name:  "analyzer.upload.size",
			Scope: instrumentation.Scope{Name: instrumentationName},
		},
		sdkmetric.Stream{
			Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
				Boundaries: uploadBoundaries,
			},
		},
	)

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(3*time.Second))),
		sdkmetric.WithResource(resource),
		sdkmetric.WithView(uploads),
	)

	otel.SetMeterProvider(provider)

	return provider.Shutdown, nil
}
