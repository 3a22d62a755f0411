package emitter

import (
	"context"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
	"golang.org/x/time/rate"

	"github.com/randalmurphal/emitkit/pkg/emitter/observability"
	"github.com/randalmurphal/emitkit/pkg/emitter/unhandled"
)

// options holds the configuration of one Emitter.
type options struct {
	logger          *slog.Logger
	metrics         observability.MetricsRecorder
	spans           observability.SpanManager
	clock           clock.Clock
	diagnosticDelay time.Duration
	limiter         *rate.Limiter
	unhandled       *unhandled.Registry
	ctx             context.Context
}

func defaultOptions() options {
	return options{
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
		clock:   clock.New(),
		limiter: rate.NewLimiter(rate.Inf, 0),
		ctx:     context.Background(),
	}
}

// Option configures an Emitter.
type Option func(*options)

// WithLogger sets the logger used for diagnostics.
// Default: slog.Default(). The emitter ID is added to every record.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics{}
//
// Example:
//
//	em := emitter.New(emitter.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithSpanManager enables a span per resolution.
// Default: observability.NoopSpanManager{}
func WithSpanManager(sm observability.SpanManager) Option {
	return func(o *options) {
		if sm != nil {
			o.spans = sm
		}
	}
}

// WithClock sets the clock that schedules the unhandled "error" diagnostic.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithDiagnosticDelay sets how long an unheard "error" resolution waits
// before it is logged. Default: 0, the next scheduler tick.
func WithDiagnosticDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.diagnosticDelay = d
		}
	}
}

// WithDiagnosticRate limits unhandled diagnostics to perSecond log records
// with the given burst. A non-positive perSecond disables the limit.
func WithDiagnosticRate(perSecond float64, burst int) Option {
	return func(o *options) {
		if perSecond <= 0 {
			o.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		o.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithUnhandledRegistry routes unhandled exceptions to r instead of
// unhandled.Default().
func WithUnhandledRegistry(r *unhandled.Registry) Option {
	return func(o *options) {
		o.unhandled = r
	}
}

// WithContext sets the context passed to metrics and spans.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}
