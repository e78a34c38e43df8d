package tree

import "maps"

// SemanticallyEqual reports whether two subtrees are the same value:
// identical kinds, tokens, payload properties, and children, ignoring
// identity, prefixes, markers, and type attribution. This is the "same
// value" comparison recipes use to detect that a rewrite changed nothing.
func SemanticallyEqual(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}

	if a.Kind != b.Kind || a.Token != b.Token {
		return false
	}

	if !maps.Equal(a.Props, b.Props) {
		return false
	}

	if len(a.Children) != len(b.Children) {
		return false
	}

	for i := range a.Children {
		if !SemanticallyEqual(a.Children[i], b.Children[i]) {
			return false
		}
	}

	return true
}
