package observability

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records emitter metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordResolution records a channel resolution and how many callbacks it reached.
	RecordResolution(ctx context.Context, channel, role string, listeners int)

	// RecordDeliveryFailure records a callback or middleware failure on a channel.
	RecordDeliveryFailure(ctx context.Context, channel string)

	// RecordUnhandled records a resolution nobody listened to.
	// kind is "error", "catch" or "exception".
	RecordUnhandled(ctx context.Context, kind string)

	// RecordReplay records sticky history replayed to a new callback.
	RecordReplay(ctx context.Context, channel string, count int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	resolutions      metric.Int64Counter
	listeners        metric.Int64Histogram
	deliveryFailures metric.Int64Counter
	unhandled        metric.Int64Counter
	replays          metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("emitkit")

	resolutions, err := meter.Int64Counter("emitkit.channel.resolutions",
		metric.WithDescription("Number of channel resolutions"),
	)
	if err != nil {
		return nil, err
	}

	listeners, err := meter.Int64Histogram("emitkit.channel.listeners",
		metric.WithDescription("Callbacks registered at resolution time"),
	)
	if err != nil {
		return nil, err
	}

	deliveryFailures, err := meter.Int64Counter("emitkit.channel.delivery_failures",
		metric.WithDescription("Callback or middleware failures rerouted to catch"),
	)
	if err != nil {
		return nil, err
	}

	unhandled, err := meter.Int64Counter("emitkit.unhandled",
		metric.WithDescription("Resolutions of error or exception channels with no listeners"),
	)
	if err != nil {
		return nil, err
	}

	replays, err := meter.Int64Counter("emitkit.channel.replays",
		metric.WithDescription("Sticky tuples replayed to late callbacks"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		resolutions:      resolutions,
		listeners:        listeners,
		deliveryFailures: deliveryFailures,
		unhandled:        unhandled,
		replays:          replays,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

func (m *otelMetrics) RecordResolution(ctx context.Context, channel, role string, listeners int) {
	attrs := metric.WithAttributes(
		attribute.String("channel", channel),
		attribute.String("role", role),
	)
	m.resolutions.Add(ctx, 1, attrs)
	m.listeners.Record(ctx, int64(listeners), attrs)
}

func (m *otelMetrics) RecordDeliveryFailure(ctx context.Context, channel string) {
	m.deliveryFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("channel", channel)))
}

func (m *otelMetrics) RecordUnhandled(ctx context.Context, kind string) {
	m.unhandled.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *otelMetrics) RecordReplay(ctx context.Context, channel string, count int) {
	m.replays.Add(ctx, int64(count), metric.WithAttributes(attribute.String("channel", channel)))
}
