package protoreg

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/chainregistry/protoreg/violation"
)

// otelMetrics holds the OpenTelemetry metric instruments for the runner.
// These are created once during construction and reused for all runs.
type otelMetrics struct {
	// filesCounter counts record files examined.
	filesCounter metric.Int64Counter

	// violationsCounter counts violations found, labeled by kind.
	violationsCounter metric.Int64Counter

	// runDuration records validation run duration in milliseconds.
	runDuration metric.Float64Histogram
}

// newOTelMetrics creates the metric instruments from a meter provider.
// Returns nil metrics when the provider is nil, making recording a no-op.
func newOTelMetrics(provider metric.MeterProvider) (*otelMetrics, error) {
	if provider == nil {
		return nil, nil
	}
	meter := provider.Meter("github.com/chainregistry/protoreg")

	m := &otelMetrics{}
	var err error

	m.filesCounter, err = meter.Int64Counter(
		"protoreg.files",
		metric.WithDescription("Number of record files examined"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create files counter: %w", err)
	}

	m.violationsCounter, err = meter.Int64Counter(
		"protoreg.violations",
		metric.WithDescription("Number of violations found, by kind"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create violations counter: %w", err)
	}

	m.runDuration, err = meter.Float64Histogram(
		"protoreg.run.duration",
		metric.WithDescription("Validation run duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return m, nil
}

// recordRun captures the outcome of one validation run. Safe on a nil
// receiver.
func (m *otelMetrics) recordRun(ctx context.Context, network string, r *violation.Report, elapsed time.Duration) {
	if m == nil {
		return
	}
	netAttr := metric.WithAttributes(attribute.String("network", network))

	m.filesCounter.Add(ctx, int64(r.FilesChecked), netAttr)
	m.runDuration.Record(ctx, float64(elapsed.Milliseconds()), netAttr)

	byKind := make(map[violation.Kind]int64)
	for _, v := range r.Violations {
		byKind[v.Kind]++
	}
	for kind, n := range byKind {
		m.violationsCounter.Add(ctx, n, metric.WithAttributes(
			attribute.String("network", network),
			attribute.String("kind", kind.String()),
		))
	}
}
