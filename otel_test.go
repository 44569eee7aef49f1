package protoreg

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/chainregistry/protoreg/violation"
)

func TestOTelMetrics_NilProvider(t *testing.T) {
	m, err := newOTelMetrics(nil)
	require.NoError(t, err)
	require.Nil(t, m)

	// Recording on nil metrics must be a no-op, not a panic.
	m.recordRun(context.Background(), "mainnet", violation.NewReport("mainnet"), time.Second)
}

func TestOTelMetrics_RecordRun(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := newOTelMetrics(provider)
	require.NoError(t, err)
	require.NotNil(t, m)

	report := violation.NewReport("testnet")
	report.FilesChecked = 3
	report.Add(
		violation.NewMissingField("a.jsonc", "name"),
		violation.NewMissingField("b.jsonc", "links"),
		violation.NewEmptyAddressMap("c.jsonc"),
	)
	m.recordRun(context.Background(), "testnet", report, 250*time.Millisecond)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	byName := map[string]metricdata.Metrics{}
	for _, metric := range rm.ScopeMetrics[0].Metrics {
		byName[metric.Name] = metric
	}

	files, ok := byName["protoreg.files"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, files.DataPoints, 1)
	assert.Equal(t, int64(3), files.DataPoints[0].Value)

	violations, ok := byName["protoreg.violations"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, violations.DataPoints, 2, "one series per violation kind")

	duration, ok := byName["protoreg.run.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, duration.DataPoints, 1)
	assert.Equal(t, uint64(1), duration.DataPoints[0].Count)
}
