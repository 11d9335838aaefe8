package telemetry

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/tundavala/escola/core"
)

// ShutdownFunc flushes and stops the providers installed by Setup.
type ShutdownFunc func(context.Context) error

// Setup installs the global tracer and meter providers, exporting to stdout.
// When telemetry is disabled the global no-op providers stay in place.
func Setup(conf *core.Config) (ShutdownFunc, error) {
	if !conf.Telemetry.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	traceExporter, err := stdouttrace.New()
	if err != nil {
		return nil, errors.Wrap(err, "creating trace exporter")
	}
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(traceExporter))
	otel.SetTracerProvider(tracerProvider)

	metricExporter, err := stdoutmetric.New()
	if err != nil {
		_ = tracerProvider.Shutdown(context.Background())
		return nil, errors.Wrap(err, "creating metric exporter")
	}
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)))
	otel.SetMeterProvider(meterProvider)

	return func(ctx context.Context) error {
		tErr := tracerProvider.Shutdown(ctx)
		mErr := meterProvider.Shutdown(ctx)
		if tErr != nil {
			return errors.Wrap(tErr, "shutting down tracer provider")
		}
		return errors.Wrap(mErr, "shutting down meter provider")
	}, nil
}
