// Package preferequals replaces reference equality between class-typed
// operands with a null-safe Objects.equals call. The replacement is built
// from a template so the synthesized call carries real type attribution;
// when the enclosing file lacks the required import the template refuses to
// synthesize and the recipe leaves the comparison alone.
package preferequals

import (
	"context"
	"errors"

	"github.com/Sumatoshi-tech/codemend/pkg/observability"
	"github.com/Sumatoshi-tech/codemend/pkg/recipe"
	"github.com/Sumatoshi-tech/codemend/pkg/template"
	"github.com/Sumatoshi-tech/codemend/pkg/tree"
	"github.com/Sumatoshi-tech/codemend/pkg/visit"
)

//nolint:gochecknoglobals // Compiled once; templates are immutable after build.
var equalsCall = template.MustBuild(
	"Objects.equals(#{}, #{})",
	template.WithImports("lang.util.Objects"),
)

// PreferEquals is the recipe.
type PreferEquals struct {
	metrics *observability.RewriteMetrics
}

// New creates the recipe.
func New() *PreferEquals {
	return &PreferEquals{}
}

// SetMetrics hands the recipe the engine counters. The runner calls this
// before the recipe runs; without it, degraded applications go uncounted
// but still leave the tree intact.
func (p *PreferEquals) SetMetrics(metrics *observability.RewriteMetrics) {
	p.metrics = metrics
}

// Descriptor implements recipe.Entry.
func (p *PreferEquals) Descriptor() recipe.Descriptor {
	return recipe.NewDescriptor(
		"PreferObjectsEquals",
		"Replaces == between class-typed operands with Objects.equals.",
		"S1698",
	)
}

// Visitor implements recipe.Recipe.
func (p *PreferEquals) Visitor() visit.Visitor {
	return visit.Gated(
		visit.UsesKind(tree.KindBinary),
		&visit.Dispatch{Kinds: map[tree.Kind]visit.Func{
			tree.KindBinary: p.rewriteComparison,
		}},
	)
}

func (p *PreferEquals) rewriteComparison(n *tree.Node, cur *tree.Cursor) *tree.Node {
	if n.Token != "==" {
		return n
	}

	left, right := n.Child(0), n.Child(1)
	if left == nil || right == nil {
		return n
	}

	// Null checks stay as reference comparisons; Objects.equals(x, null)
	// obscures the intent.
	if isNullLiteral(left) || isNullLiteral(right) {
		return n
	}

	if !classTyped(left) || !classTyped(right) {
		return n
	}

	rewritten, err := equalsCall.Apply(cur, template.Replace(), left, right)
	if err != nil {
		if errors.Is(err, template.ErrSynthesis) {
			// Visitor hooks carry no context; the counter attributes hold
			// everything the backend needs.
			p.metrics.RecordSynthesisFailure(context.Background(), p.Descriptor().ID)

			return n
		}

		// Apply only fails with synthesis errors today; anything else is a
		// contract break worth surfacing loudly.
		panic(err)
	}

	return rewritten
}

func isNullLiteral(n *tree.Node) bool {
	return n.Kind == tree.KindLiteral && n.Token == "null"
}

func classTyped(n *tree.Node) bool {
	return n.Type != nil && n.Type.Kind == tree.TypeClass
}
