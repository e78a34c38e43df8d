// Package simplifybool rewrites redundant boolean negations: a negated
// comparison becomes the inverse comparison, and double negation is
// unwrapped. Unwrapping can expose a new instance one level up, so the
// visitor is meant to run under repeat-until-stable.
package simplifybool

import (
	"github.com/Sumatoshi-tech/codemend/pkg/recipe"
	"github.com/Sumatoshi-tech/codemend/pkg/tree"
	"github.com/Sumatoshi-tech/codemend/pkg/visit"
)

// Inverse comparison operators.
//
//nolint:gochecknoglobals // Package-level lookup table, never mutated.
var inverseOperators = map[string]string{
	"==": "!=",
	"!=": "==",
	"<":  ">=",
	">=": "<",
	">":  "<=",
	"<=": ">",
}

// SimplifyBool is the recipe.
type SimplifyBool struct{}

// New creates the recipe.
func New() *SimplifyBool {
	return &SimplifyBool{}
}

// Descriptor implements recipe.Entry.
func (s *SimplifyBool) Descriptor() recipe.Descriptor {
	return recipe.NewDescriptor(
		"SimplifyBooleanExpression",
		"Replaces negated comparisons with the inverse comparison and removes double negation.",
		"S1940", "S2761",
	)
}

// Visitor implements recipe.Recipe. The full visitor only runs on files
// that contain a negation at all.
func (s *SimplifyBool) Visitor() visit.Visitor {
	return visit.Gated(
		visit.UsesKind(tree.KindUnary),
		&visit.Dispatch{Kinds: map[tree.Kind]visit.Func{
			tree.KindUnary: simplifyNegation,
		}},
	)
}

func simplifyNegation(n *tree.Node, _ *tree.Cursor) *tree.Node {
	if n.Token != "!" {
		return n
	}

	operand := n.Child(0)
	if operand == nil {
		return n
	}

	switch operand.Kind {
	case tree.KindUnary:
		if operand.Token == "!" {
			return operand.Child(0).WithPrefix(n.Prefix)
		}
	case tree.KindBinary:
		if inverse, ok := inverseOperators[operand.Token]; ok {
			return operand.WithToken(inverse).WithPrefix(n.Prefix)
		}
	default:
	}

	return n
}
