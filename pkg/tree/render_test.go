package tree_test

import (
	"testing"

	"github.com/Sumatoshi-tech/codemend/pkg/tree"
)

func TestRenderVarDecl(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node *tree.Node
		want string
	}{
		{
			"bare declaration",
			tree.New(tree.KindVarDecl, "").WithProp("name", "count"),
			"count;",
		},
		{
			"typed with initializer",
			tree.New(tree.KindVarDecl, "",
				tree.New(tree.KindLiteral, "0"),
			).WithProp("name", "count").WithProp("type", "int"),
			"int count = 0;",
		},
		{
			"initialized from a call",
			tree.New(tree.KindVarDecl, "",
				tree.New(tree.KindCall, "",
					tree.New(tree.KindIdentifier, "make"),
					tree.New(tree.KindLiteral, "8"),
				),
			).WithProp("name", "buf"),
			"buf = make(8);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tree.Render(tt.node); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderStatements(t *testing.T) {
	t.Parallel()

	block := tree.New(tree.KindBlock, "",
		tree.New(tree.KindVarDecl, "",
			tree.New(tree.KindIdentifier, "other"),
		).WithProp("name", "x"),
		tree.New(tree.KindReturn, "", tree.New(tree.KindIdentifier, "x")),
	)

	want := "{ x = other; return x; }"
	if got := tree.Render(block); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}
