// Package telemetry wires OpenTelemetry metrics for the bot.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const meterName = "github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot"

// Instruments are created against the global meter so they bind to the real
// provider once Init installs it. Before Init they are no-ops.
var (
	// CommandsTotal counts handled commands, labelled by command name.
	CommandsTotal metric.Int64Counter
	// PhotosStored counts photos accepted into sessions.
	PhotosStored metric.Int64Counter
	// AssembleDuration records PDF assembly latency in seconds.
	AssembleDuration metric.Float64Histogram
	// PhotosPerPDF records how many pages each generated PDF contains.
	PhotosPerPDF metric.Int64Histogram
)

func init() {
	meter := otel.Meter(meterName)

	CommandsTotal, _ = meter.Int64Counter("bot.commands.total",
		metric.WithDescription("Number of bot commands handled"))
	PhotosStored, _ = meter.Int64Counter("bot.photos.stored.total",
		metric.WithDescription("Number of photos accepted into user sessions"))
	AssembleDuration, _ = meter.Float64Histogram("pdf.assemble.duration",
		metric.WithDescription("PDF assembly latency"),
		metric.WithUnit("s"))
	PhotosPerPDF, _ = meter.Int64Histogram("pdf.assemble.pages",
		metric.WithDescription("Pages per generated PDF"))
}

// Init installs a meter provider with a periodic stdout exporter and returns
// its shutdown function.
func Init(ctx context.Context, serviceName string) (func(context.Context) error, error) {
	exporter, err := stdoutmetric.New()
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
			exporter,
			sdkmetric.WithInterval(time.Minute),
		)),
	)
	otel.SetMeterProvider(provider)

	return provider.Shutdown, nil
}
