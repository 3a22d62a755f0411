// Package observability provides structured logging, metrics and tracing
// for emitters.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry, or Prometheus through the prometheus subpackage
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"fmt"
	"log/slog"
)

// EnrichLogger adds emitter context to a logger.
// Returns a new logger with the emitter_id field.
//
// Example:
//
//	logger := EnrichLogger(slog.Default(), em.ID())
//	logger.Info("wired") // includes emitter_id
func EnrichLogger(logger *slog.Logger, emitterID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("component", "emitter"),
		slog.String("emitter_id", emitterID),
	)
}

// LogUnhandledError logs an "error" resolution that nobody listened to.
func LogUnhandledError(logger *slog.Logger, channel string, args []any) {
	if logger == nil {
		return
	}
	logger.Warn("unhandled error resolution",
		slog.String("channel", channel),
		slog.String("args", formatArgs(args)),
	)
}

// LogUnhandledException logs an exception-role resolution with no listeners.
func LogUnhandledException(logger *slog.Logger, channel string, args []any) {
	if logger == nil {
		return
	}
	logger.Warn("unhandled exception",
		slog.String("channel", channel),
		slog.String("args", formatArgs(args)),
	)
}

// LogDeliveryFailure logs a callback or middleware failure that is being rerouted.
func LogDeliveryFailure(logger *slog.Logger, channel string, route string, err error) {
	if logger == nil {
		return
	}
	logger.Debug("delivery failed",
		slog.String("channel", channel),
		slog.String("route", route),
		slog.String("error", err.Error()),
	)
}

// LogReplay logs sticky history being replayed to a new callback.
func LogReplay(logger *slog.Logger, channel string, count int) {
	if logger == nil {
		return
	}
	logger.Debug("replaying sticky history",
		slog.String("channel", channel),
		slog.Int("count", count),
	)
}

// LogDestroyed logs emitter teardown.
func LogDestroyed(logger *slog.Logger, channels int) {
	if logger == nil {
		return
	}
	logger.Debug("emitter destroyed",
		slog.Int("channels", channels),
	)
}

// LogHandlerPanic logs a panic recovered from an unhandled-exception handler.
func LogHandlerPanic(logger *slog.Logger, value any) {
	if logger == nil {
		return
	}
	logger.Error("unhandled exception handler panicked",
		slog.String("panic", fmt.Sprint(value)),
	)
}

func formatArgs(args []any) string {
	if len(args) == 0 {
		return "[]"
	}
	return fmt.Sprint(args)
}
