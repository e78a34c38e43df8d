package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/Sumatoshi-tech/codemend/pkg/observability"
)

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(observability.Config{
		Service:   "codemend-test",
		LogLevel:  "info",
		LogFormat: "text",
	})
	require.NoError(t, err)

	require.NotNil(t, providers.Tracer)
	require.NotNil(t, providers.Meter)
	require.NotNil(t, providers.Logger)

	_, span := providers.Tracer.Start(context.Background(), "noop")
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestTracingHandlerAttachesServiceMetadata(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	handler := observability.NewTracingHandler(
		slog.NewJSONHandler(&buf, nil), "codemend-test", "ci")
	slog.New(handler).Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "codemend-test", record["service"])
	assert.Equal(t, "ci", record["env"])
	assert.Equal(t, "hello", record["msg"])
	// No span in context means no trace attributes.
	assert.NotContains(t, record, "trace_id")
}

func TestNewRewriteMetricsOnNoopMeter(t *testing.T) {
	t.Parallel()

	metrics, err := observability.NewRewriteMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	// Recording must be safe with and without a receiver.
	metrics.RecordRecipeRun(context.Background(), "r")
	metrics.RecordUnitChanged(context.Background(), "r")
	metrics.RecordSynthesisFailure(context.Background(), "r")

	var nilMetrics *observability.RewriteMetrics
	nilMetrics.RecordRecipeRun(context.Background(), "r")
}

func TestBuildLoggerHonorsLevel(t *testing.T) {
	t.Parallel()

	logger := observability.BuildLogger(observability.Config{
		Service:   "codemend-test",
		LogLevel:  "warn",
		LogFormat: "json",
	})

	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
}
