// Package tree provides the immutable, lossless syntax tree that rewrite
// recipes operate on: nodes with stable identity, whitespace-preserving
// prefixes, semantic type attribution, out-of-band markers, and the cursor
// used for context during traversal.
//
// Nodes are immutable value objects. A recipe never assigns to a node's
// fields; every change goes through a With* method, which copies the node
// and preserves its identity so structural-equality tooling can still
// recognize "the same statement, just reshaped".
package tree

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Node is one immutable syntactic construct.
//
// Fields:
//
//	ID: random identity, assigned at creation, preserved across With* copies.
//	Kind: the syntactic construct (see kind constants).
//	Prefix: whitespace and comments preceding the construct.
//	Token: kind-specific scalar payload (operator, identifier text, literal).
//	Props: additional kind-specific payload (method name, flags).
//	Type: semantic type resolved by the external typechecker, nil when absent.
//	Markers: out-of-band tags passed between visitor passes.
//	Children: positional child slots (see the layout table in kinds.go).
//
// The exported fields exist for construction and inspection only; treat a
// Node as read-only once it is part of a tree.
type Node struct {
	ID       uuid.UUID
	Kind     Kind
	Prefix   Space
	Token    string
	Props    map[string]string
	Type     *SemType
	Markers  Markers
	Children []*Node
}

// New creates a node of the given kind with a fresh random identity.
func New(kind Kind, token string, children ...*Node) *Node {
	return &Node{
		ID:       uuid.New(),
		Kind:     kind,
		Token:    token,
		Children: children,
	}
}

// Category returns the node's grammatical category.
func (n *Node) Category() Category {
	return CategoryOf(n.Kind)
}

// Prop returns the named payload property, or "" when unset.
func (n *Node) Prop(name string) string {
	return n.Props[name]
}

// Child returns the i-th child, or nil when out of range. Useful for
// optional trailing slots (else branch, return value).
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}

	return n.Children[i]
}

// SameID reports whether two nodes are the same location: identity is
// preserved across With* copies, so this holds between a node and any
// reshaped version of it.
func SameID(a, b *Node) bool {
	if a == nil || b == nil {
		return false
	}

	return a.ID == b.ID
}

// copyNode duplicates the node's value, keeping its identity.
func (n *Node) copyNode() *Node {
	duplicate := *n

	return &duplicate
}

// WithPrefix returns a copy of the node with the given prefix.
// Returns the receiver unchanged when the prefix is already equal.
func (n *Node) WithPrefix(prefix Space) *Node {
	if n.Prefix.Equal(prefix) {
		return n
	}

	duplicate := n.copyNode()
	duplicate.Prefix = prefix

	return duplicate
}

// WithToken returns a copy of the node with the given token.
func (n *Node) WithToken(token string) *Node {
	if n.Token == token {
		return n
	}

	duplicate := n.copyNode()
	duplicate.Token = token

	return duplicate
}

// WithProp returns a copy of the node with the named property set.
func (n *Node) WithProp(name, value string) *Node {
	if n.Props[name] == value {
		return n
	}

	duplicate := n.copyNode()
	duplicate.Props = maps.Clone(n.Props)

	if duplicate.Props == nil {
		duplicate.Props = map[string]string{}
	}

	duplicate.Props[name] = value

	return duplicate
}

// WithType returns a copy of the node with the given semantic type.
func (n *Node) WithType(semType *SemType) *Node {
	if n.Type == semType {
		return n
	}

	duplicate := n.copyNode()
	duplicate.Type = semType

	return duplicate
}

// WithMarkers returns a copy of the node with the given marker set.
func (n *Node) WithMarkers(markers Markers) *Node {
	duplicate := n.copyNode()
	duplicate.Markers = markers

	return duplicate
}

// WithChildren returns a copy of the node with the given children.
// Returns the receiver unchanged when every child is pointer-identical.
func (n *Node) WithChildren(children []*Node) *Node {
	if sameChildren(n.Children, children) {
		return n
	}

	duplicate := n.copyNode()
	duplicate.Children = children

	return duplicate
}

// WithChild returns a copy of the node with the i-th child replaced.
// A nil replacement removes the child. Out-of-range indices panic: that is
// a recipe bug, not an input condition.
func (n *Node) WithChild(i int, child *Node) *Node {
	if i < 0 || i >= len(n.Children) {
		panic(fmt.Sprintf("tree: WithChild index %d out of range for %d children", i, len(n.Children)))
	}

	if n.Children[i] == child {
		return n
	}

	children := make([]*Node, 0, len(n.Children))
	children = append(children, n.Children[:i]...)

	if child != nil {
		children = append(children, child)
	}

	children = append(children, n.Children[i+1:]...)

	duplicate := n.copyNode()
	duplicate.Children = children

	return duplicate
}

func sameChildren(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// Clone returns a deep copy of the subtree with fresh identities throughout.
// Used when a subtree is spliced into more than one location.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	duplicate := n.copyNode()
	duplicate.ID = uuid.New()
	duplicate.Props = maps.Clone(n.Props)
	duplicate.Children = make([]*Node, len(n.Children))

	for i, child := range n.Children {
		duplicate.Children[i] = child.Clone()
	}

	return duplicate
}

// Find returns all nodes in the subtree (including the root) for which the
// predicate holds, in pre-order. Returns nil when n is nil.
func (n *Node) Find(predicate func(*Node) bool) []*Node {
	if n == nil {
		return nil
	}

	var result []*Node

	stack := []*Node{n}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if predicate(current) {
			result = append(result, current)
		}

		for i := len(current.Children) - 1; i >= 0; i-- {
			stack = append(stack, current.Children[i])
		}
	}

	return result
}

// Count returns the number of nodes in the subtree.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}

	total := 1
	for _, child := range n.Children {
		total += child.Count()
	}

	return total
}

// String returns a compact debug representation of the node.
func (n *Node) String() string {
	if n == nil {
		return "nil"
	}

	var buf strings.Builder

	buf.WriteString("Node{Kind:")
	buf.WriteString(string(n.Kind))

	if n.Token != "" {
		buf.WriteString(",Token:")
		buf.WriteString(n.Token)
	}

	if len(n.Props) > 0 {
		fmt.Fprintf(&buf, ",Props:%v", n.Props)
	}

	if n.Type != nil {
		buf.WriteString(",Type:")
		buf.WriteString(n.Type.String())
	}

	if len(n.Children) > 0 {
		buf.WriteString(",Children:")
		buf.WriteString(strconv.Itoa(len(n.Children)))
	}

	buf.WriteString("}")

	return buf.String()
}
