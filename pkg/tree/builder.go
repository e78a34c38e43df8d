package tree

import "github.com/google/uuid"

// NodeBuilder provides a fluent interface for constructing nodes, used by
// tests, the template engine, and external parser adapters.
type NodeBuilder struct {
	node *Node
}

// NewBuilder creates a builder for a node of the given kind with a fresh
// random identity.
func NewBuilder(kind Kind) *NodeBuilder {
	return &NodeBuilder{node: &Node{ID: uuid.New(), Kind: kind}}
}

// WithID overrides the node identity. Parser adapters use this to carry an
// externally assigned identity; everyone else keeps the random one.
func (b *NodeBuilder) WithID(id uuid.UUID) *NodeBuilder {
	b.node.ID = id

	return b
}

// WithToken sets the token payload.
func (b *NodeBuilder) WithToken(token string) *NodeBuilder {
	b.node.Token = token

	return b
}

// WithPrefix sets the leading whitespace and comments.
func (b *NodeBuilder) WithPrefix(prefix Space) *NodeBuilder {
	b.node.Prefix = prefix

	return b
}

// WithProp sets one payload property.
func (b *NodeBuilder) WithProp(name, value string) *NodeBuilder {
	if b.node.Props == nil {
		b.node.Props = map[string]string{}
	}

	b.node.Props[name] = value

	return b
}

// WithType sets the semantic type.
func (b *NodeBuilder) WithType(semType *SemType) *NodeBuilder {
	b.node.Type = semType

	return b
}

// WithMarkers sets the marker set.
func (b *NodeBuilder) WithMarkers(markers Markers) *NodeBuilder {
	b.node.Markers = markers

	return b
}

// AddChildren appends child nodes in order.
func (b *NodeBuilder) AddChildren(children ...*Node) *NodeBuilder {
	b.node.Children = append(b.node.Children, children...)

	return b
}

// Build returns the constructed node. The builder must not be reused.
func (b *NodeBuilder) Build() *Node {
	return b.node
}
