package tree

import "github.com/google/uuid"

// Marker is a typed, immutable tag attached to a node out of band: it carries
// a fact between visitor passes without changing the node's payload shape.
// One pass adds a marker, a later pass consumes and strips it.
type Marker interface {
	// MarkerID is the marker's own identity, distinct from the node's.
	MarkerID() uuid.UUID
}

// Markers is the immutable marker set of a node. The zero value is an empty
// set; Add returns a new set, the receiver is never modified.
type Markers struct {
	list []Marker
}

// NewMarkers builds a marker set from the given markers.
func NewMarkers(markers ...Marker) Markers {
	return Markers{list: markers}
}

// Len returns the number of markers in the set.
func (m Markers) Len() int {
	return len(m.list)
}

// Add returns a new set with the marker appended.
func (m Markers) Add(marker Marker) Markers {
	combined := make([]Marker, 0, len(m.list)+1)
	combined = append(combined, m.list...)
	combined = append(combined, marker)

	return Markers{list: combined}
}

// All returns the markers in insertion order. Callers must not modify the
// returned slice.
func (m Markers) All() []Marker {
	return m.list
}

// FindMarker returns the first marker of type T on the node.
func FindMarker[T Marker](n *Node) (T, bool) {
	var zero T

	if n == nil {
		return zero, false
	}

	for _, marker := range n.Markers.list {
		if typed, ok := marker.(T); ok {
			return typed, true
		}
	}

	return zero, false
}

// StripMarker returns a copy of the node without markers of type T, or the
// node itself when none are present.
func StripMarker[T Marker](n *Node) *Node {
	found := false

	for _, marker := range n.Markers.list {
		if _, ok := marker.(T); ok {
			found = true

			break
		}
	}

	if !found {
		return n
	}

	kept := make([]Marker, 0, len(n.Markers.list))

	for _, marker := range n.Markers.list {
		if _, ok := marker.(T); !ok {
			kept = append(kept, marker)
		}
	}

	return n.WithMarkers(Markers{list: kept})
}
