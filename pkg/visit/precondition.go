package visit

import "github.com/Sumatoshi-tech/codemend/pkg/tree"

// Check is a cheap whole-subtree presence test used to decide whether a full
// recipe visitor is worth running at all. Checks have no effect on output;
// gating exists because the recipe visitor is far more expensive per node
// than a single-purpose scan.
type Check func(root *tree.Node) bool

// UsesKind reports whether any node of the given kind occurs in the subtree.
func UsesKind(kind tree.Kind) Check {
	return func(root *tree.Node) bool {
		return exists(root, func(n *tree.Node) bool { return n.Kind == kind })
	}
}

// ContainsToken reports whether any node carries the given token.
func ContainsToken(token string) Check {
	return func(root *tree.Node) bool {
		return exists(root, func(n *tree.Node) bool { return n.Token == token })
	}
}

// UsesType reports whether the subtree mentions the fully qualified type,
// either through type attribution or an import declaration.
func UsesType(fullyQualified string) Check {
	return func(root *tree.Node) bool {
		return exists(root, func(n *tree.Node) bool {
			if n.Kind == tree.KindImport && n.Token == fullyQualified {
				return true
			}

			return n.Type.IsClass(fullyQualified)
		})
	}
}

// And passes when every check passes.
func And(checks ...Check) Check {
	return func(root *tree.Node) bool {
		for _, check := range checks {
			if !check(root) {
				return false
			}
		}

		return true
	}
}

// Or passes when at least one check passes.
func Or(checks ...Check) Check {
	return func(root *tree.Node) bool {
		for _, check := range checks {
			if check(root) {
				return true
			}
		}

		return false
	}
}

// Not inverts a check.
func Not(check Check) Check {
	return func(root *tree.Node) bool {
		return !check(root)
	}
}

// Gated wraps a visitor so the tree is only descended into when the check
// passes at the root. When the check fails, the walk short-circuits and the
// identical root comes back untouched.
func Gated(check Check, inner Visitor) Visitor {
	return &gated{check: check, inner: inner}
}

type gated struct {
	check   Check
	inner   Visitor
	allowed bool
}

func (g *gated) Skip(n *tree.Node, cur *tree.Cursor) bool {
	if cur.Parent() == nil {
		g.allowed = g.check(n)

		if !g.allowed {
			return true
		}
	}

	if !g.allowed {
		return true
	}

	skipper, ok := g.inner.(Skipper)

	return ok && skipper.Skip(n, cur)
}

func (g *gated) Visit(n *tree.Node, cur *tree.Cursor) *tree.Node {
	if !g.allowed {
		return n
	}

	return g.inner.Visit(n, cur)
}

func exists(root *tree.Node, predicate func(*tree.Node) bool) bool {
	if root == nil {
		return false
	}

	stack := []*tree.Node{root}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if predicate(current) {
			return true
		}

		stack = append(stack, current.Children...)
	}

	return false
}
