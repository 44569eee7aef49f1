package protoreg

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/chainregistry/protoreg/config"
	"github.com/chainregistry/protoreg/probe"
)

// Option configures a Runner.
type Option func(*runnerConfig)

// runnerConfig holds configuration for the Runner instance.
type runnerConfig struct {
	cfg           *config.Config
	logger        *slog.Logger
	meterProvider metric.MeterProvider
	tracer        trace.Tracer
	prober        *probe.Prober
	probeWorkers  int
}

// WithConfig sets an explicit configuration, bypassing the protoreg.yaml
// lookup in the registry root.
func WithConfig(cfg *config.Config) Option {
	return func(c *runnerConfig) {
		c.cfg = cfg
	}
}

// WithLogger sets a custom logger for the runner.
// If not provided, a default JSON logger is created.
func WithLogger(logger *slog.Logger) Option {
	return func(c *runnerConfig) {
		c.logger = logger
	}
}

// WithMeterProvider enables OpenTelemetry metrics for validation runs.
// Without it, no instruments are created and recording is a no-op.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(c *runnerConfig) {
		c.meterProvider = provider
	}
}

// WithTracer sets an OpenTelemetry tracer for spans around the run phases.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *runnerConfig) {
		c.tracer = tracer
	}
}

// WithProber sets a pre-built prober, overriding the one the runner would
// assemble from configuration. Mainly useful in tests.
func WithProber(p *probe.Prober) Option {
	return func(c *runnerConfig) {
		c.prober = p
	}
}

// WithProbeWorkers overrides the configured probe pool size. Values <= 0 are
// ignored.
func WithProbeWorkers(n int) Option {
	return func(c *runnerConfig) {
		c.probeWorkers = n
	}
}
