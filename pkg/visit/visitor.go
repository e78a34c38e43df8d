// Package visit implements the depth-first tree traversal engine recipes
// ride on: per-kind hook dispatch with identity defaults, bottom-up rebuild
// of replaced nodes, pre-descent skipping, after-pass scheduling,
// repeat-until-stable composition, and precondition gating.
package visit

import "github.com/Sumatoshi-tech/codemend/pkg/tree"

// Func is a visitation hook: it receives the node (children already visited
// and rebuilt) and a cursor positioned on it, and returns the node to put in
// its place. Returning the input unchanged means no match; returning nil
// deletes the node from its parent.
type Func func(*tree.Node, *tree.Cursor) *tree.Node

// Visitor is a traversal strategy. The engine invokes Visit for every node,
// children first.
type Visitor interface {
	Visit(n *tree.Node, cur *tree.Cursor) *tree.Node
}

// Skipper is implemented by visitors that can refuse to descend into a
// subtree. Skip runs before any child is visited; returning true leaves the
// whole subtree untouched.
type Skipper interface {
	Skip(n *tree.Node, cur *tree.Cursor) bool
}

// Dispatch routes each node to the hook registered for its kind, falling
// back to Any, then to identity. It is the "override only what you need"
// building block recipes compose their visitors from.
type Dispatch struct {
	// Kinds maps a node kind to its hook.
	Kinds map[tree.Kind]Func
	// Any runs for nodes whose kind has no dedicated hook. Nil means
	// identity.
	Any Func
	// SkipWhen gates descent; nil never skips.
	SkipWhen func(*tree.Node, *tree.Cursor) bool
}

// Visit dispatches on the node's kind.
func (d *Dispatch) Visit(n *tree.Node, cur *tree.Cursor) *tree.Node {
	if hook, ok := d.Kinds[n.Kind]; ok {
		return hook(n, cur)
	}

	if d.Any != nil {
		return d.Any(n, cur)
	}

	return n
}

// Skip implements Skipper.
func (d *Dispatch) Skip(n *tree.Node, cur *tree.Cursor) bool {
	return d.SkipWhen != nil && d.SkipWhen(n, cur)
}

// Identity is a visitor with no hooks: it returns every node unchanged.
// Walking it over any tree yields the identical root pointer.
//
//nolint:gochecknoglobals // Stateless shared instance.
var Identity Visitor = &Dispatch{}
