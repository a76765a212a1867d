// Package observability bundles the logger, tracer and metrics registry the
// modules are built with.
package observability

import (
	"log/slog"
	"os"
	"strings"

	"github.com/Black-And-White-Club/barbershop-bot/app/shared/observability/contestmetrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
}

// Config selects the log level and format. Format "json" writes JSON records,
// anything else writes text.
type Config struct {
	ServiceName string
	LogLevel    string
	LogFormat   string
}

// New builds the process-wide observability bundle. Tracing uses the global
// otel provider, which is a no-op unless an exporter registers one.
func New(cfg Config) Observability {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler).With(slog.String("service", cfg.ServiceName))

	return Observability{
		Logger:   logger,
		Tracer:   otel.Tracer(cfg.ServiceName),
		Registry: prometheus.NewRegistry(),
	}
}

// Metrics returns the recorder for one module, or a no-op recorder when the
// bundle has no registry.
func (o Observability) Metrics(module string) contestmetrics.Metrics {
	if o.Registry == nil {
		return contestmetrics.NoOp{}
	}
	return contestmetrics.NewPrometheusMetrics(o.Registry, module)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
