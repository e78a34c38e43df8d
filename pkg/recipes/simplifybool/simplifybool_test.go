package simplifybool_test

import (
	"testing"

	"github.com/Sumatoshi-tech/codemend/pkg/recipes/simplifybool"
	"github.com/Sumatoshi-tech/codemend/pkg/tree"
	"github.com/Sumatoshi-tech/codemend/pkg/visit"
)

func wrap(expr *tree.Node) *tree.Node {
	return tree.New(tree.KindFile, "",
		tree.New(tree.KindMethodDecl, "",
			tree.New(tree.KindBlock, "",
				tree.New(tree.KindReturn, "", expr),
			),
		).WithProp("name", "m"),
	)
}

func returnedExpr(root *tree.Node) *tree.Node {
	return root.Find(func(n *tree.Node) bool { return n.Kind == tree.KindReturn })[0].Child(0)
}

func negated(inner *tree.Node) *tree.Node {
	return tree.New(tree.KindUnary, "!", inner)
}

func comparison(op string) *tree.Node {
	return tree.New(tree.KindBinary, op,
		tree.New(tree.KindIdentifier, "a"),
		tree.New(tree.KindIdentifier, "b"),
	)
}

func TestInvertsNegatedComparisons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		op   string
		want string
	}{
		{"==", "!="},
		{"!=", "=="},
		{"<", ">="},
		{">=", "<"},
		{">", "<="},
		{"<=", ">"},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			t.Parallel()

			root := wrap(negated(comparison(tt.op)))
			out := visit.Walk(simplifybool.New().Visitor(), root)

			got := returnedExpr(out)
			if got.Kind != tree.KindBinary || got.Token != tt.want {
				t.Errorf("got %s %q, want Binary %q", got.Kind, got.Token, tt.want)
			}
		})
	}
}

func TestUnwrapsDoubleNegation(t *testing.T) {
	t.Parallel()

	ident := tree.New(tree.KindIdentifier, "flag")
	root := wrap(negated(negated(ident)))

	out := visit.Walk(simplifybool.New().Visitor(), root)

	if returnedExpr(out).Token != "flag" {
		t.Error("double negation not unwrapped")
	}
}

func TestDeepNegationFullyUnwrapped(t *testing.T) {
	t.Parallel()

	ident := tree.New(tree.KindIdentifier, "flag")
	root := wrap(negated(negated(negated(negated(ident)))))

	out := visit.RepeatUntilStable(simplifybool.New().Visitor(), root, 0)

	got := returnedExpr(out)
	if got.Kind != tree.KindIdentifier || got.Token != "flag" {
		t.Errorf("got %s %q, want the bare identifier", got.Kind, got.Token)
	}
}

func TestPreservesPrefixOfOuterNegation(t *testing.T) {
	t.Parallel()

	prefix := tree.Space{Whitespace: " ", Comments: []tree.Comment{{Text: "// inverted"}}}
	expr := negated(comparison("==")).WithPrefix(prefix)
	root := wrap(expr)

	out := visit.Walk(simplifybool.New().Visitor(), root)

	if !returnedExpr(out).Prefix.Equal(prefix) {
		t.Error("replacement lost the negation's prefix")
	}
}

func TestLeavesOtherUnariesAndOperatorsAlone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr *tree.Node
	}{
		{"arithmetic negation", tree.New(tree.KindUnary, "-", tree.New(tree.KindIdentifier, "a"))},
		{"negated conjunction", negated(tree.New(tree.KindBinary, "&&",
			tree.New(tree.KindIdentifier, "a"),
			tree.New(tree.KindIdentifier, "b"),
		))},
		{"plain comparison", comparison("<")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := wrap(tt.expr)
			if visit.Walk(simplifybool.New().Visitor(), root) != root {
				t.Error("rewrote an expression it should leave alone")
			}
		})
	}
}

func TestGateSkipsFilesWithoutNegation(t *testing.T) {
	t.Parallel()

	root := wrap(comparison("=="))

	if visit.Walk(simplifybool.New().Visitor(), root) != root {
		t.Error("file without a unary was not skipped wholesale")
	}
}

func TestIdempotent(t *testing.T) {
	t.Parallel()

	root := wrap(negated(comparison("<")))

	once := visit.RepeatUntilStable(simplifybool.New().Visitor(), root, 0)
	twice := visit.RepeatUntilStable(simplifybool.New().Visitor(), once, 0)

	if twice != once {
		t.Error("second application changed the tree again")
	}
}
