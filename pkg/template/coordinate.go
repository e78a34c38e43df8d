package template

import (
	"github.com/google/uuid"

	"github.com/Sumatoshi-tech/codemend/pkg/tree"
)

// Mode selects which grammatical slot of the target node an application
// fills.
type Mode int

// Coordinate modes.
const (
	// ModeReplace replaces the target node itself.
	ModeReplace Mode = iota
	// ModeBefore inserts the synthesized statements before an anchor child
	// of the target.
	ModeBefore
	// ModeAfter inserts the synthesized statements after an anchor child of
	// the target.
	ModeAfter
	// ModeFirstStatement inserts the synthesized statements at the start of
	// the target block.
	ModeFirstStatement
)

// Coordinate names the splice point of a template application relative to
// the cursor's node.
type Coordinate struct {
	mode   Mode
	anchor uuid.UUID
}

// Replace targets the cursor's node itself; the synthesized node takes over
// its prefix.
func Replace() Coordinate {
	return Coordinate{mode: ModeReplace}
}

// InsertBefore targets the slot just before the given child of the cursor's
// node. The anchor is matched by identity, so it keeps working after the
// child was reshaped by an earlier hook.
func InsertBefore(anchor *tree.Node) Coordinate {
	return Coordinate{mode: ModeBefore, anchor: anchor.ID}
}

// InsertAfter targets the slot just after the given child of the cursor's
// node.
func InsertAfter(anchor *tree.Node) Coordinate {
	return Coordinate{mode: ModeAfter, anchor: anchor.ID}
}

// FirstStatement targets the start of the cursor's block.
func FirstStatement() Coordinate {
	return Coordinate{mode: ModeFirstStatement}
}
