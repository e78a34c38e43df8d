// Package recipe defines the contract rewrite recipes expose to the runner:
// descriptive metadata, visitor factories, the scan-then-edit protocol for
// recipes that need whole-program facts before any edit is safe, and the
// registry the CLI resolves recipe IDs against.
package recipe

import "github.com/Sumatoshi-tech/codemend/pkg/visit"

// Descriptor is a recipe's descriptive metadata. It is a thin layer for
// humans and external rule catalogs; nothing in the rewriting contract
// depends on it.
type Descriptor struct {
	// ID is the stable kebab-case identifier recipes are addressed by.
	ID string
	// DisplayName is the human-readable name.
	DisplayName string
	// Description explains what the recipe detects and rewrites.
	Description string
	// Tags reference rule identifiers in external catalogs.
	Tags []string
}

// Entry is the least common denominator of everything a registry holds.
type Entry interface {
	Descriptor() Descriptor
}

// Recipe is a single-pass rewrite: the runner obtains a fresh visitor per
// unit and applies it under repeat-until-stable. A visitor instance is never
// shared across units.
type Recipe interface {
	Entry

	// Visitor returns a fresh visitor. The visitor either changes a given
	// construct or leaves it untouched; there is no half-applied state.
	Visitor() visit.Visitor
}

// ScanRecipe is a two-phase rewrite. The runner drives phase one (Scanner)
// over every unit to populate the accumulator, and only then phase two
// (Editor) over each unit. Editing on a partially populated accumulator is
// the one correctness property this protocol exists to prevent.
type ScanRecipe interface {
	Entry

	// NewAccumulator creates the shared fact store for one execution.
	NewAccumulator() any

	// Scanner returns a read-only visitor that populates the accumulator.
	// Its tree return values are discarded; only accumulator writes matter.
	Scanner(acc any) visit.Visitor

	// Editor returns the rewriting visitor, parameterized by the fully
	// populated accumulator. By convention it only reads the accumulator.
	Editor(acc any) visit.Visitor
}

// OptionType is the value type of a recipe option.
type OptionType int

// Option value types.
const (
	// BoolOption is a boolean option.
	BoolOption OptionType = iota
	// IntOption is an integer option.
	IntOption
	// StringOption is a string option.
	StringOption
	// StringsOption is a list-of-strings option.
	StringsOption
)

// String returns the type name shown by the CLI.
func (t OptionType) String() string {
	switch t {
	case BoolOption:
		return "bool"
	case IntOption:
		return "int"
	case StringOption:
		return "string"
	case StringsOption:
		return "strings"
	}

	return "unknown"
}

// Option describes one configurable knob of a recipe.
type Option struct {
	// Default is the value used when the rewrite plan does not set one.
	Default any
	// Name identifies the option in rewrite plans.
	Name string
	// Description is the help text.
	Description string
	// Type is the expected value type.
	Type OptionType
}

// Configurable is implemented by recipes that accept options from the
// rewrite plan.
type Configurable interface {
	// Options lists the recipe's configurable knobs.
	Options() []Option

	// Configure applies plan-supplied values. Unknown keys are an error.
	Configure(values map[string]any) error
}
