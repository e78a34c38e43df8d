// Package emptyswitch unwraps switch statements that reduce to only a
// default case. The switch-level hook tags the node with a marker and leaves
// a message for its enclosing frame; the block-level hook, running later in
// the same bottom-up pass, consumes both and splices the default body into
// the block, re-anchoring the switch's leading comments onto the first
// spliced statement.
package emptyswitch

import (
	"github.com/google/uuid"

	"github.com/Sumatoshi-tech/codemend/pkg/recipe"
	"github.com/Sumatoshi-tech/codemend/pkg/tree"
	"github.com/Sumatoshi-tech/codemend/pkg/visit"
)

const prefixMessagePrefix = "emptyswitch.prefix."

// ReducedToDefault tags a switch whose cases all collapsed away. It is
// consumed and stripped by the enclosing block's hook.
type ReducedToDefault struct {
	id uuid.UUID
}

// MarkerID implements tree.Marker.
func (m ReducedToDefault) MarkerID() uuid.UUID {
	return m.id
}

// EmptySwitch is the recipe.
type EmptySwitch struct{}

// New creates the recipe.
func New() *EmptySwitch {
	return &EmptySwitch{}
}

// Descriptor implements recipe.Entry.
func (e *EmptySwitch) Descriptor() recipe.Descriptor {
	return recipe.NewDescriptor(
		"UnwrapDefaultOnlySwitch",
		"Replaces a switch containing only a default case with the default case's body.",
		"S3923",
	)
}

// Visitor implements recipe.Recipe.
func (e *EmptySwitch) Visitor() visit.Visitor {
	return visit.Gated(
		visit.UsesKind(tree.KindSwitch),
		&visit.Dispatch{Kinds: map[tree.Kind]visit.Func{
			tree.KindSwitch: markDefaultOnlySwitch,
			tree.KindBlock:  unwrapMarkedSwitches,
		}},
	)
}

// markDefaultOnlySwitch tags a default-only switch for the enclosing block
// and parks the switch's prefix on the parent frame so the block can
// re-anchor comments onto the spliced body.
func markDefaultOnlySwitch(n *tree.Node, cur *tree.Cursor) *tree.Node {
	if _, alreadyMarked := tree.FindMarker[ReducedToDefault](n); alreadyMarked {
		return n
	}

	if len(n.Children) != 2 || !n.Child(1).IsDefaultCase() {
		return n
	}

	// A selector with side effects must survive; unwrapping would drop it.
	selector := n.Child(0)
	if selector == nil || selector.Kind == tree.KindCall {
		return n
	}

	parent := cur.Parent()
	if parent == nil || parent.Node().Kind != tree.KindBlock {
		return n
	}

	parent.PutMessage(prefixMessagePrefix+n.ID.String(), n.Prefix)

	return n.WithMarkers(n.Markers.Add(ReducedToDefault{id: uuid.New()}))
}

// unwrapMarkedSwitches splices the default body of every marked switch
// child into the block.
func unwrapMarkedSwitches(n *tree.Node, cur *tree.Cursor) *tree.Node {
	changed := false
	children := make([]*tree.Node, 0, len(n.Children))

	for _, child := range n.Children {
		if _, marked := tree.FindMarker[ReducedToDefault](child); !marked {
			children = append(children, child)

			continue
		}

		changed = true
		children = append(children, defaultBody(child, cur)...)
	}

	if !changed {
		return n
	}

	return n.WithChildren(children)
}

func defaultBody(switchNode *tree.Node, cur *tree.Cursor) []*tree.Node {
	body := switchNode.Child(1).Child(0)
	if body == nil || body.Kind != tree.KindBlock || len(body.Children) == 0 {
		return nil
	}

	statements := body.Children

	raw, ok := cur.PollMessage(prefixMessagePrefix + switchNode.ID.String())
	if !ok {
		return statements
	}

	prefix, ok := raw.(tree.Space)
	if !ok || prefix.IsEmpty() {
		return statements
	}

	reanchored := make([]*tree.Node, len(statements))
	copy(reanchored, statements)
	reanchored[0] = statements[0].WithPrefix(prefix)

	return reanchored
}
