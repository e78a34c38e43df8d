package tree

// Cursor is a traversal position: the node under visitation plus a link to
// the parent cursor, forming the path back to the root. A cursor also
// carries a message table scoped to its frame, which descendants use to pass
// facts back up to a specific ancestor during the same pass.
//
// Cursors live for one traversal pass: they are created on descent and
// discarded on ascent, and messages never survive into a scheduled
// follow-up pass.
type Cursor struct {
	parent   *Cursor
	node     *Node
	messages map[string]any
}

// NewCursor creates a cursor for the given node below the given parent.
// A nil parent marks the root frame. The message table is allocated up
// front so every Fork of this frame shares it.
func NewCursor(parent *Cursor, node *Node) *Cursor {
	return &Cursor{parent: parent, node: node, messages: map[string]any{}}
}

// Node returns the node at this position.
func (c *Cursor) Node() *Node {
	return c.node
}

// Parent returns the parent cursor, or nil above the root. Callers must
// branch on nil; there is no silent default.
func (c *Cursor) Parent() *Cursor {
	return c.parent
}

// Root returns the root frame of the path.
func (c *Cursor) Root() *Cursor {
	current := c
	for current.parent != nil {
		current = current.parent
	}

	return current
}

// Fork returns a cursor at the same frame (same parent, same message table)
// positioned on a different node. The traversal engine uses this to hand a
// hook the rebuilt node without losing messages stored on the frame.
func (c *Cursor) Fork(node *Node) *Cursor {
	return &Cursor{parent: c.parent, node: node, messages: c.messages}
}

// DropParentUntil walks up the path and returns the first ancestor cursor
// whose node satisfies the predicate, or nil when none does.
func (c *Cursor) DropParentUntil(predicate func(*Node) bool) *Cursor {
	for current := c.parent; current != nil; current = current.parent {
		if predicate(current.node) {
			return current
		}
	}

	return nil
}

// DropParentWhile walks up the path as long as the predicate holds and
// returns the first ancestor cursor where it stops holding, or nil when the
// predicate holds all the way past the root.
func (c *Cursor) DropParentWhile(predicate func(*Node) bool) *Cursor {
	for current := c.parent; current != nil; current = current.parent {
		if !predicate(current.node) {
			return current
		}
	}

	return nil
}

// FirstEnclosing returns the nearest ancestor cursor of the given kind,
// or nil when there is none.
func (c *Cursor) FirstEnclosing(kind Kind) *Cursor {
	return c.DropParentUntil(func(n *Node) bool { return n.Kind == kind })
}

// PutMessage stores a fact on this frame under the given key, overwriting
// any previous value.
func (c *Cursor) PutMessage(key string, value any) {
	if c.messages == nil {
		c.messages = map[string]any{}
	}

	c.messages[key] = value
}

// GetMessage returns the fact stored on this frame under the key. The second
// return reports presence; a message that was never set is an explicit
// absence, not a zero value.
func (c *Cursor) GetMessage(key string) (any, bool) {
	value, ok := c.messages[key]

	return value, ok
}

// PollMessage returns and removes the fact stored under the key.
func (c *Cursor) PollMessage(key string) (any, bool) {
	value, ok := c.messages[key]
	if ok {
		delete(c.messages, key)
	}

	return value, ok
}

// Path returns the nodes from the root down to this position, inclusive.
func (c *Cursor) Path() []*Node {
	var reversed []*Node

	for current := c; current != nil; current = current.parent {
		reversed = append(reversed, current.node)
	}

	path := make([]*Node, len(reversed))
	for i, node := range reversed {
		path[len(path)-1-i] = node
	}

	return path
}
