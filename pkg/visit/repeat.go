package visit

import "github.com/Sumatoshi-tech/codemend/pkg/tree"

// DefaultMaxPasses bounds repeat-until-stable iteration. The cap guarantees
// termination against visitors that oscillate between two tree shapes;
// hitting it is treated as done, not as an error.
const DefaultMaxPasses = 10

// RepeatUntilStable reapplies the visitor to its own output until one full
// pass produces no change, or maxPasses is reached. Some rewrites expose a
// new instance of their own pattern one level up (unwrapping nested
// branches, for example), which is why a single pass is not always enough.
// A maxPasses of zero or less selects DefaultMaxPasses.
func RepeatUntilStable(v Visitor, root *tree.Node, maxPasses int) *tree.Node {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}

	current := root

	for pass := 0; pass < maxPasses; pass++ {
		next := Walk(v, current)

		if next == current {
			return current
		}

		if tree.SemanticallyEqual(next, current) {
			return next
		}

		current = next
	}

	return current
}
