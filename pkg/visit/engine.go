package visit

import (
	"fmt"

	"github.com/Sumatoshi-tech/codemend/pkg/tree"
)

// scheduleKey is the root-frame message slot holding visitors scheduled to
// run after the current pass.
const scheduleKey = "codemend.visit.afterPass"

// Walk traverses the tree depth-first, visiting children before their
// parent, and returns the (possibly replaced) root. Ancestors of a replaced
// node are rebuilt on the way back up; the original tree is never mutated.
// When no hook replaces anything the returned root is pointer-identical to
// the input.
//
// Visitors scheduled via ScheduleAfter during the pass run over the full
// result once the pass completes, in scheduling order; passes they schedule
// themselves are appended to the same queue.
//
// A nil return from the root's own hook deletes the whole tree; Walk then
// returns nil.
func Walk(v Visitor, root *tree.Node) *tree.Node {
	current, queue := walkPass(v, root)

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		var more []Visitor

		current, more = walkPass(next, current)
		queue = append(queue, more...)
	}

	return current
}

func walkPass(v Visitor, root *tree.Node) (*tree.Node, []Visitor) {
	if root == nil {
		return nil, nil
	}

	rootCur := tree.NewCursor(nil, root)
	result := walkNode(v, root, rootCur)

	raw, ok := rootCur.PollMessage(scheduleKey)
	if !ok {
		return result, nil
	}

	scheduled, ok := raw.([]Visitor)
	if !ok {
		return result, nil
	}

	return result, scheduled
}

func walkNode(v Visitor, n *tree.Node, cur *tree.Cursor) *tree.Node {
	if skipper, ok := v.(Skipper); ok && skipper.Skip(n, cur) {
		return n
	}

	rebuilt := n

	if len(n.Children) > 0 {
		changed := false
		children := make([]*tree.Node, 0, len(n.Children))

		for _, child := range n.Children {
			out := walkNode(v, child, tree.NewCursor(cur, child))

			if out != child {
				changed = true
			}

			if out != nil {
				children = append(children, out)
			}
		}

		if changed {
			rebuilt = n.WithChildren(children)
		}
	}

	return v.Visit(rebuilt, cur.Fork(rebuilt))
}

// WalkSame is the homogeneous traversal flavor: it walks like Walk but
// asserts that no hook moves a node across grammatical categories (a
// statement must stay a statement). A violation panics; it indicates a bug
// in the visitor, not a property of the input.
func WalkSame(v Visitor, root *tree.Node) *tree.Node {
	return Walk(&categoryChecked{inner: v}, root)
}

type categoryChecked struct {
	inner Visitor
}

func (c *categoryChecked) Visit(n *tree.Node, cur *tree.Cursor) *tree.Node {
	out := c.inner.Visit(n, cur)

	if out != nil && out.Category() != n.Category() {
		panic(fmt.Sprintf(
			"visit: homogeneous walk replaced %s (%s) with %s (%s)",
			n.Kind, n.Category(), out.Kind, out.Category(),
		))
	}

	return out
}

func (c *categoryChecked) Skip(n *tree.Node, cur *tree.Cursor) bool {
	skipper, ok := c.inner.(Skipper)

	return ok && skipper.Skip(n, cur)
}

// ScheduleAfter registers a visitor to run over the entire tree once the
// current pass completes. Hooks use this for rewrites that must not
// interleave with the current pass's node replacement, such as fixing up
// call sites after a declaration changed.
func ScheduleAfter(cur *tree.Cursor, v Visitor) {
	root := cur.Root()

	var scheduled []Visitor

	if raw, ok := root.GetMessage(scheduleKey); ok {
		if existing, castOK := raw.([]Visitor); castOK {
			scheduled = existing
		}
	}

	root.PutMessage(scheduleKey, append(scheduled, v))
}
