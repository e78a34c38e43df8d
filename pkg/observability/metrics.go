package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RewriteMetrics holds the engine's counters. All instruments come from the
// configured meter, so they are no-ops when telemetry is off.
type RewriteMetrics struct {
	recipesRun        metric.Int64Counter
	unitsChanged      metric.Int64Counter
	synthesisFailures metric.Int64Counter
}

// NewRewriteMetrics creates the engine counters on the given meter.
func NewRewriteMetrics(meter metric.Meter) (*RewriteMetrics, error) {
	recipesRun, err := meter.Int64Counter(
		"codemend.recipes.run",
		metric.WithDescription("Recipe executions, per recipe and unit."),
	)
	if err != nil {
		return nil, fmt.Errorf("recipes counter: %w", err)
	}

	unitsChanged, err := meter.Int64Counter(
		"codemend.units.changed",
		metric.WithDescription("Source units a recipe actually modified."),
	)
	if err != nil {
		return nil, fmt.Errorf("units counter: %w", err)
	}

	synthesisFailures, err := meter.Int64Counter(
		"codemend.template.synthesis_failures",
		metric.WithDescription("Template applications that degraded to a no-op."),
	)
	if err != nil {
		return nil, fmt.Errorf("synthesis counter: %w", err)
	}

	return &RewriteMetrics{
		recipesRun:        recipesRun,
		unitsChanged:      unitsChanged,
		synthesisFailures: synthesisFailures,
	}, nil
}

// RecordRecipeRun counts one recipe execution over one unit.
func (m *RewriteMetrics) RecordRecipeRun(ctx context.Context, recipeID string) {
	if m == nil {
		return
	}

	m.recipesRun.Add(ctx, 1, metric.WithAttributes(attribute.String("recipe", recipeID)))
}

// RecordUnitChanged counts one modified unit.
func (m *RewriteMetrics) RecordUnitChanged(ctx context.Context, recipeID string) {
	if m == nil {
		return
	}

	m.unitsChanged.Add(ctx, 1, metric.WithAttributes(attribute.String("recipe", recipeID)))
}

// RecordSynthesisFailure counts one degraded template application.
func (m *RewriteMetrics) RecordSynthesisFailure(ctx context.Context, recipeID string) {
	if m == nil {
		return
	}

	m.synthesisFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("recipe", recipeID)))
}
