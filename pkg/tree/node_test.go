package tree_test

import (
	"testing"

	"github.com/Sumatoshi-tech/codemend/pkg/tree"
)

func TestWithMethodsPreserveIdentity(t *testing.T) {
	t.Parallel()

	original := tree.New(tree.KindBinary, "==",
		tree.New(tree.KindIdentifier, "a"),
		tree.New(tree.KindIdentifier, "b"),
	)

	tests := []struct {
		name    string
		reshape func(*tree.Node) *tree.Node
	}{
		{"token", func(n *tree.Node) *tree.Node { return n.WithToken("!=") }},
		{"prefix", func(n *tree.Node) *tree.Node { return n.WithPrefix(tree.Space{Whitespace: "\n  "}) }},
		{"prop", func(n *tree.Node) *tree.Node { return n.WithProp("flag", "true") }},
		{"type", func(n *tree.Node) *tree.Node { return n.WithType(tree.PrimitiveType("bool")) }},
		{"children", func(n *tree.Node) *tree.Node {
			return n.WithChildren([]*tree.Node{tree.New(tree.KindLiteral, "1")})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reshaped := tt.reshape(original)

			if reshaped == original {
				t.Fatal("reshape returned the receiver for a real change")
			}

			if !tree.SameID(original, reshaped) {
				t.Error("identity not preserved across reshape")
			}
		})
	}
}

func TestWithMethodsReturnReceiverWhenUnchanged(t *testing.T) {
	t.Parallel()

	n := tree.New(tree.KindIdentifier, "x").WithProp("k", "v")

	if n.WithToken("x") != n {
		t.Error("WithToken copied for an identical token")
	}

	if n.WithProp("k", "v") != n {
		t.Error("WithProp copied for an identical value")
	}

	if n.WithPrefix(tree.EmptySpace) != n {
		t.Error("WithPrefix copied for an equal prefix")
	}

	if n.WithChildren(n.Children) != n {
		t.Error("WithChildren copied for identical children")
	}
}

func TestWithPropDoesNotMutateOriginal(t *testing.T) {
	t.Parallel()

	original := tree.New(tree.KindIdentifier, "x").WithProp("a", "1")
	_ = original.WithProp("a", "2")

	if got := original.Prop("a"); got != "1" {
		t.Errorf("original mutated: Prop(a) = %q, want 1", got)
	}
}

func TestWithChildRemovesOnNil(t *testing.T) {
	t.Parallel()

	call := tree.New(tree.KindCall, "",
		tree.New(tree.KindIdentifier, "f"),
		tree.New(tree.KindLiteral, "1"),
		tree.New(tree.KindLiteral, "2"),
	)

	shrunk := call.WithChild(1, nil)

	if len(shrunk.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(shrunk.Children))
	}

	if shrunk.Child(1).Token != "2" {
		t.Errorf("wrong child removed: got %q", shrunk.Child(1).Token)
	}
}

func TestWithChildPanicsOutOfRange(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("no panic for out-of-range index")
		}
	}()

	tree.New(tree.KindBlock, "").WithChild(0, tree.New(tree.KindEmpty, ""))
}

func TestCloneAssignsFreshIdentities(t *testing.T) {
	t.Parallel()

	original := tree.New(tree.KindBlock, "",
		tree.New(tree.KindReturn, "", tree.New(tree.KindLiteral, "1")),
	)

	cloned := original.Clone()

	if tree.SameID(original, cloned) {
		t.Error("clone kept the root identity")
	}

	if tree.SameID(original.Child(0), cloned.Child(0)) {
		t.Error("clone kept a child identity")
	}

	if !tree.SemanticallyEqual(original, cloned) {
		t.Error("clone is not semantically equal to the original")
	}
}

func TestFindIsPreOrder(t *testing.T) {
	t.Parallel()

	root := tree.New(tree.KindBlock, "",
		tree.New(tree.KindExprStmt, "", tree.New(tree.KindIdentifier, "a")),
		tree.New(tree.KindExprStmt, "", tree.New(tree.KindIdentifier, "b")),
	)

	found := root.Find(func(n *tree.Node) bool { return n.Kind == tree.KindIdentifier })

	if len(found) != 2 {
		t.Fatalf("got %d matches, want 2", len(found))
	}

	if found[0].Token != "a" || found[1].Token != "b" {
		t.Errorf("wrong order: %s, %s", found[0].Token, found[1].Token)
	}
}

func TestCount(t *testing.T) {
	t.Parallel()

	root := tree.New(tree.KindBlock, "",
		tree.New(tree.KindReturn, "", tree.New(tree.KindLiteral, "1")),
	)

	if got := root.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}

	var nilNode *tree.Node
	if got := nilNode.Count(); got != 0 {
		t.Errorf("nil Count() = %d, want 0", got)
	}
}

func TestSemanticallyEqualIgnoresIncidentals(t *testing.T) {
	t.Parallel()

	base := tree.New(tree.KindBinary, "==",
		tree.New(tree.KindIdentifier, "a"),
		tree.New(tree.KindIdentifier, "b"),
	)

	reshaped := base.
		WithPrefix(tree.Space{Whitespace: "\n\t"}).
		WithType(tree.PrimitiveType("bool"))
	reshaped = reshaped.WithChildren([]*tree.Node{
		reshaped.Child(0).Clone(),
		reshaped.Child(1).WithPrefix(tree.Space{Whitespace: " "}),
	})

	if !tree.SemanticallyEqual(base, reshaped) {
		t.Error("prefix, type, and identity changes broke semantic equality")
	}

	if tree.SemanticallyEqual(base, base.WithToken("!=")) {
		t.Error("token change did not break semantic equality")
	}
}
