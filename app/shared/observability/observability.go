// Package observability bundles the logger, tracer and metrics registry
// handed to every module.
package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Black-And-White-Club/irock/app/shared/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ServiceName identifies this service in logs, traces and metrics.
const ServiceName = "irock"

// Config selects log format and level.
type Config struct {
	Environment string
	LogLevel    string
	// Output defaults to stdout.
	Output io.Writer
}

// Observability is shared by all modules.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
	Metrics  metrics.Metrics
}

// New builds the logger, tracer and Prometheus registry. Production
// environments log JSON; everything else logs text.
func New(cfg Config) (Observability, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)}
	var handler slog.Handler
	switch strings.ToLower(cfg.Environment) {
	case "production", "prod":
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}
	logger := slog.New(handler).With(
		slog.String("service", ServiceName),
		slog.String("environment", cfg.Environment),
	)

	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return Observability{}, fmt.Errorf("failed to register go collector: %w", err)
	}
	m, err := metrics.NewPrometheus(reg)
	if err != nil {
		return Observability{}, fmt.Errorf("failed to register metrics: %w", err)
	}

	return Observability{
		Logger:   logger,
		Tracer:   otel.Tracer(ServiceName),
		Registry: reg,
		Metrics:  m,
	}, nil
}

// NewNoop returns observability that discards logs, spans and metrics.
func NewNoop() Observability {
	return Observability{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:   noop.NewTracerProvider().Tracer(ServiceName),
		Registry: prometheus.NewRegistry(),
		Metrics:  metrics.NewNoop(),
	}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
