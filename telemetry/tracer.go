package telemetry

import (
	"context"

	"github.com/flanksource/commons/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc/credentials"
)

// InitTracer wires the global tracer provider to an OTLP gRPC collector.
// It returns the exporter shutdown func; failures are logged and leave
// tracing as a no-op rather than blocking startup.
func InitTracer(serviceName, collectorURL string, insecure bool) func(context.Context) error {
	noop := func(_ context.Context) error { return nil }

	var secureOption otlptracegrpc.Option
	if !insecure {
		secureOption = otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, ""))
	} else {
		secureOption = otlptracegrpc.WithInsecure()
	}

	exporter, err := otlptrace.New(
		context.Background(),
		otlptracegrpc.NewClient(
			secureOption,
			otlptracegrpc.WithEndpoint(collectorURL),
		),
	)
	if err != nil {
		logger.Errorf("failed to create opentelemetry exporter: %v", err)
		return noop
	}

	resources, err := resource.New(context.Background(), resource.WithAttributes(
		attribute.String("service.name", serviceName),
	))
	if err != nil {
		logger.Errorf("could not set opentelemetry resources: %v", err)
		return noop
	}

	otel.SetTracerProvider(
		sdktrace.NewTracerProvider(
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(resources),
		),
	)

	otel.SetTextMapPropagator(propagation.TraceContext{})

	return exporter.Shutdown
}
