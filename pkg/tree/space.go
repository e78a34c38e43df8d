package tree

// Comment is one comment captured in a node's prefix, with the whitespace
// that follows it.
type Comment struct {
	Text   string
	Suffix string
}

// Space is the whitespace and comments preceding a construct. It is carried
// verbatim through rewrites so the external printer can reconstruct source
// text for everything a recipe did not touch.
type Space struct {
	Whitespace string
	Comments   []Comment
}

// EmptySpace is the zero prefix.
//
//nolint:gochecknoglobals // Shared immutable zero value.
var EmptySpace = Space{}

// Equal reports whether two prefixes are identical.
func (s Space) Equal(other Space) bool {
	if s.Whitespace != other.Whitespace || len(s.Comments) != len(other.Comments) {
		return false
	}

	for i := range s.Comments {
		if s.Comments[i] != other.Comments[i] {
			return false
		}
	}

	return true
}

// IsEmpty reports whether the prefix carries no whitespace and no comments.
func (s Space) IsEmpty() bool {
	return s.Whitespace == "" && len(s.Comments) == 0
}

// Render reconstructs the prefix text.
func (s Space) Render() string {
	out := s.Whitespace
	for _, comment := range s.Comments {
		out += comment.Text + comment.Suffix
	}

	return out
}
