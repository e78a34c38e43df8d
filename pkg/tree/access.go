package tree

// Convenience accessors over the positional child layouts. They return zero
// values on kind mismatch so pattern-matching code can probe without
// pre-checking the kind.

// CalleeName returns the simple name a Call invokes: the identifier token of
// a plain call, or the member token of a method call. Empty for non-calls
// and computed callees.
func (n *Node) CalleeName() string {
	if n == nil || n.Kind != KindCall {
		return ""
	}

	callee := n.Child(0)
	if callee == nil {
		return ""
	}

	switch callee.Kind {
	case KindIdentifier:
		return callee.Token
	case KindSelect:
		return callee.Token
	default:
		return ""
	}
}

// Arguments returns the argument expressions of a Call, nil for non-calls.
func (n *Node) Arguments() []*Node {
	if n == nil || n.Kind != KindCall || len(n.Children) == 0 {
		return nil
	}

	return n.Children[1:]
}

// MethodName returns the declared name of a MethodDecl.
func (n *Node) MethodName() string {
	if n == nil || n.Kind != KindMethodDecl {
		return ""
	}

	return n.Prop("name")
}

// Parameters returns the Parameter children of a MethodDecl in order.
func (n *Node) Parameters() []*Node {
	if n == nil || n.Kind != KindMethodDecl {
		return nil
	}

	var params []*Node

	for _, child := range n.Children {
		if child.Kind == KindParameter {
			params = append(params, child)
		}
	}

	return params
}

// Body returns the Block child of a MethodDecl, or nil when absent.
func (n *Node) Body() *Node {
	if n == nil || n.Kind != KindMethodDecl {
		return nil
	}

	for _, child := range n.Children {
		if child.Kind == KindBlock {
			return child
		}
	}

	return nil
}

// IsDefaultCase reports whether a Case node is the default label.
func (n *Node) IsDefaultCase() bool {
	return n != nil && n.Kind == KindCase && n.Prop("default") == "true"
}
