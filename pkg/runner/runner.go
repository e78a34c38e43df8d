// Package runner sequences recipes over a set of source units. Each recipe
// sees the output of the previous one; scan/edit recipes get their scan
// phase completed over every unit strictly before any edit executes.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/codemend/pkg/observability"
	"github.com/Sumatoshi-tech/codemend/pkg/recipe"
	"github.com/Sumatoshi-tech/codemend/pkg/tree"
	"github.com/Sumatoshi-tech/codemend/pkg/visit"
)

// ErrUnsupportedRecipe reports a registry entry that implements neither the
// single-pass nor the scan/edit contract.
var ErrUnsupportedRecipe = errors.New("entry implements no runnable recipe contract")

// MetricsAware is implemented by recipes that record engine counters while
// they rewrite. The runner hands its counters over before the recipe runs;
// a nil counter set is safe to record on.
type MetricsAware interface {
	SetMetrics(metrics *observability.RewriteMetrics)
}

// Unit is one compilation unit: a named, parsed, type-attributed tree.
type Unit struct {
	Name string
	Root *tree.Node
}

// Result records the outcome of one recipe over one unit.
type Result struct {
	RecipeID string
	Unit     string
	Changed  bool
	Duration time.Duration
}

// Runner executes recipes sequentially. Traversal itself is synchronous,
// single-threaded recursive descent; node immutability makes every pass a
// pure function from old tree to new tree, and the scan-before-edit ordering
// depends on that total order.
type Runner struct {
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *observability.RewriteMetrics
	maxPasses int
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithTracer sets the tracer used for per-recipe spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Runner) { r.tracer = tracer }
}

// WithMetrics sets the engine counters.
func WithMetrics(metrics *observability.RewriteMetrics) Option {
	return func(r *Runner) { r.metrics = metrics }
}

// WithMaxPasses bounds repeat-until-stable iteration per recipe and unit.
func WithMaxPasses(maxPasses int) Option {
	return func(r *Runner) { r.maxPasses = maxPasses }
}

// New creates a runner. Without options it logs to the default slog logger
// and traces into the void.
func New(opts ...Option) *Runner {
	runner := &Runner{
		logger:    slog.Default(),
		tracer:    nooptrace.NewTracerProvider().Tracer("codemend"),
		maxPasses: visit.DefaultMaxPasses,
	}

	for _, opt := range opts {
		opt(runner)
	}

	return runner
}

// Run applies the recipes in order to the units and returns the rewritten
// units plus per-recipe-per-unit results. The input units are not modified.
// Cancellation is honored between recipes, never inside a traversal.
func (r *Runner) Run(ctx context.Context, recipes []recipe.Entry, units []Unit) ([]Unit, []Result, error) {
	current := make([]Unit, len(units))
	copy(current, units)

	var results []Result

	for _, entry := range recipes {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("run recipes: %w", err)
		}

		id := entry.Descriptor().ID

		if aware, ok := entry.(MetricsAware); ok {
			aware.SetMetrics(r.metrics)
		}

		ctx, span := r.tracer.Start(ctx, "recipe",
			trace.WithAttributes(attribute.String("recipe.id", id)),
		)

		recipeResults, err := r.runOne(ctx, entry, current)

		span.End()

		if err != nil {
			return nil, nil, err
		}

		results = append(results, recipeResults...)
	}

	return current, results, nil
}

// runOne applies a single recipe to every unit in place.
func (r *Runner) runOne(ctx context.Context, entry recipe.Entry, units []Unit) ([]Result, error) {
	switch typed := entry.(type) {
	case recipe.ScanRecipe:
		return r.runScanEdit(ctx, typed, units), nil
	case recipe.Recipe:
		return r.runSinglePass(ctx, typed, units), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRecipe, entry.Descriptor().ID)
	}
}

func (r *Runner) runSinglePass(ctx context.Context, rec recipe.Recipe, units []Unit) []Result {
	id := rec.Descriptor().ID
	results := make([]Result, 0, len(units))

	for i := range units {
		started := time.Now()

		rewritten := visit.RepeatUntilStable(rec.Visitor(), units[i].Root, r.maxPasses)

		results = append(results, r.record(ctx, id, &units[i], rewritten, started))
	}

	return results
}

// runScanEdit drives the two-phase protocol. The scan phase walks every
// unit before any edit; its visitor returns are discarded by design, only
// accumulator writes matter.
func (r *Runner) runScanEdit(ctx context.Context, rec recipe.ScanRecipe, units []Unit) []Result {
	id := rec.Descriptor().ID
	acc := rec.NewAccumulator()

	for i := range units {
		visit.Walk(rec.Scanner(acc), units[i].Root)
	}

	r.logger.DebugContext(ctx, "scan phase complete", "recipe", id, "units", len(units))

	results := make([]Result, 0, len(units))

	for i := range units {
		started := time.Now()

		rewritten := visit.Walk(rec.Editor(acc), units[i].Root)

		results = append(results, r.record(ctx, id, &units[i], rewritten, started))
	}

	return results
}

func (r *Runner) record(ctx context.Context, id string, unit *Unit, rewritten *tree.Node, started time.Time) Result {
	changed := rewritten != unit.Root

	r.metrics.RecordRecipeRun(ctx, id)

	if changed {
		r.metrics.RecordUnitChanged(ctx, id)
		r.logger.InfoContext(ctx, "unit rewritten", "recipe", id, "unit", unit.Name)

		unit.Root = rewritten
	} else {
		r.logger.DebugContext(ctx, "unit unchanged", "recipe", id, "unit", unit.Name)
	}

	return Result{
		RecipeID: id,
		Unit:     unit.Name,
		Changed:  changed,
		Duration: time.Since(started),
	}
}
