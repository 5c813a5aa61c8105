// Package observability builds the logger, tracer and Prometheus registry
// shared by every module.
package observability

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config selects the log format, level and service identity.
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string
	Output      io.Writer
}

// Provider owns the logger.
type Provider struct {
	Logger *slog.Logger
}

// Registry owns the tracer and metrics.
type Registry struct {
	Tracer     trace.Tracer
	Prometheus *prometheus.Registry
	Metrics    *Metrics
}

type Observability struct {
	Provider *Provider
	Registry *Registry
}

// Init builds the production observability stack. The tracer comes from the
// global otel provider, which stays a no-op unless an SDK is installed.
func Init(cfg Config) Observability {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "prode"
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	var handler slog.Handler
	if strings.EqualFold(cfg.Environment, "development") || strings.EqualFold(cfg.Environment, "dev") {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	logger := slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
		slog.String("env", cfg.Environment),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return Observability{
		Provider: &Provider{Logger: logger},
		Registry: &Registry{
			Tracer:     otel.Tracer(cfg.ServiceName),
			Prometheus: reg,
			Metrics:    NewMetrics(reg, "prode"),
		},
	}
}

// NewNoop returns a silent stack for tests.
func NewNoop() Observability {
	return Observability{
		Provider: &Provider{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))},
		Registry: &Registry{
			Tracer:     noop.NewTracerProvider().Tracer("test"),
			Prometheus: prometheus.NewRegistry(),
			Metrics:    NewMetrics(nil, "prode"),
		},
	}
}

// MetricsHandler serves the registry in the Prometheus exposition format.
func (o Observability) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(o.Registry.Prometheus, promhttp.HandlerOpts{Registry: o.Registry.Prometheus})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
