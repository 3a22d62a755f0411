package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/randalmurphal/emitkit/pkg/emitter"
	"github.com/randalmurphal/emitkit/pkg/emitter/observability"
	emitprom "github.com/randalmurphal/emitkit/pkg/emitter/observability/prometheus"
)

// EnvPrefix prefixes every variable Settings reads.
const EnvPrefix = "EMITKIT_"

// Metrics backends accepted by Settings.Metrics.
const (
	MetricsNone       = "none"
	MetricsOTel       = "otel"
	MetricsPrometheus = "prometheus"
)

// ErrInvalidSettings wraps every Settings validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds process-level emitter configuration from the environment.
type Settings struct {
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	DiagnosticDelay time.Duration `env:"DIAGNOSTIC_DELAY" envDefault:"0s"`
	DiagnosticRate  float64       `env:"DIAGNOSTIC_RATE" envDefault:"0"`
	DiagnosticBurst int           `env:"DIAGNOSTIC_BURST" envDefault:"1"`
	Metrics         string        `env:"METRICS" envDefault:"none"`
	Tracing         bool          `env:"TRACING" envDefault:"false"`
}

// SettingsFromEnv reads Settings from the process environment.
func SettingsFromEnv() (Settings, error) {
	return parseSettings(env.Options{Prefix: EnvPrefix})
}

// SettingsFromMap reads Settings from vars instead of the process
// environment. Keys carry the EMITKIT_ prefix.
func SettingsFromMap(vars map[string]string) (Settings, error) {
	return parseSettings(env.Options{Prefix: EnvPrefix, Environment: vars})
}

func parseSettings(opts env.Options) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, opts); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// SettingsSection is the config file section LoadSettings overlays.
const SettingsSection = "emitter"

// LoadSettings reads Settings from the environment and overlays the
// "emitter" section of the YAML or JSON file at path, when it has one.
func LoadSettings(path string) (Settings, error) {
	s, err := SettingsFromEnv()
	if err != nil {
		return Settings{}, err
	}
	cfg, err := FromFile(path)
	if err != nil {
		return Settings{}, err
	}
	if !cfg.Has(SettingsSection) {
		return s, nil
	}
	return s.Overlay(cfg.Sub(SettingsSection))
}

// Overlay returns s with every key present in c applied on top, then
// validates the result. Keys: log_level, diagnostic_delay (duration string
// or seconds), diagnostic_rate, diagnostic_burst, metrics, tracing.
func (s Settings) Overlay(c Config) (Settings, error) {
	s.LogLevel = c.String("log_level", s.LogLevel)
	s.DiagnosticDelay = c.Duration("diagnostic_delay", s.DiagnosticDelay)
	s.DiagnosticRate = c.Float("diagnostic_rate", s.DiagnosticRate)
	s.DiagnosticBurst = c.Int("diagnostic_burst", s.DiagnosticBurst)
	s.Metrics = c.String("metrics", s.Metrics)
	s.Tracing = c.Bool("tracing", s.Tracing)
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks field ranges and enumerations.
func (s Settings) Validate() error {
	if _, err := s.Level(); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidSettings, s.LogLevel)
	}
	if s.DiagnosticDelay < 0 {
		return fmt.Errorf("%w: negative diagnostic delay %s", ErrInvalidSettings, s.DiagnosticDelay)
	}
	if s.DiagnosticRate < 0 {
		return fmt.Errorf("%w: negative diagnostic rate %v", ErrInvalidSettings, s.DiagnosticRate)
	}
	if s.DiagnosticBurst < 1 {
		return fmt.Errorf("%w: diagnostic burst must be at least 1", ErrInvalidSettings)
	}
	switch s.Metrics {
	case MetricsNone, MetricsOTel, MetricsPrometheus:
	default:
		return fmt.Errorf("%w: unsupported metrics backend %q", ErrInvalidSettings, s.Metrics)
	}
	return nil
}

// Level parses LogLevel.
func (s Settings) Level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s.LogLevel))
	return level, err
}

// Logger returns a JSON logger writing to w at LogLevel. A nil w writes
// to os.Stderr.
func (s Settings) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := s.Level()
	if err != nil {
		return nil, fmt.Errorf("%w: log level %q", ErrInvalidSettings, s.LogLevel)
	}
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// Options turns s into emitter options. With the prometheus backend the
// collector is registered on reg, or prometheus.DefaultRegisterer when reg
// is nil; call Options once per registry and share the result.
func (s Settings) Options(w io.Writer, reg prometheus.Registerer) ([]emitter.Option, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	logger, err := s.Logger(w)
	if err != nil {
		return nil, err
	}

	opts := []emitter.Option{
		emitter.WithLogger(logger),
		emitter.WithDiagnosticDelay(s.DiagnosticDelay),
		emitter.WithDiagnosticRate(s.DiagnosticRate, s.DiagnosticBurst),
	}

	switch s.Metrics {
	case MetricsOTel:
		opts = append(opts, emitter.WithMetrics(observability.NewMetricsRecorder()))
	case MetricsPrometheus:
		opts = append(opts, emitter.WithMetrics(emitprom.NewCollector(reg)))
	}
	if s.Tracing {
		opts = append(opts, emitter.WithSpanManager(observability.NewSpanManager()))
	}
	return opts, nil
}
