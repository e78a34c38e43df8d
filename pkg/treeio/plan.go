package treeio

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Sentinel plan errors.
var (
	ErrEmptyPlan       = errors.New("rewrite plan lists no recipes")
	ErrMissingRecipeID = errors.New("rewrite plan step is missing a recipe id")
)

// Plan is an ordered list of recipes to apply, each with optional
// configuration. Recipes run sequentially; each sees the output of the
// previous one as its input.
type Plan struct {
	Recipes []PlanStep `yaml:"recipes"`
}

// PlanStep selects one recipe and its options.
type PlanStep struct {
	ID      string         `yaml:"id"`
	Options map[string]any `yaml:"options,omitempty"`
}

// LoadPlan decodes and validates a YAML rewrite plan.
func LoadPlan(r io.Reader) (*Plan, error) {
	plan := &Plan{}

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(plan); err != nil {
		return nil, fmt.Errorf("decode rewrite plan: %w", err)
	}

	if len(plan.Recipes) == 0 {
		return nil, ErrEmptyPlan
	}

	for i, step := range plan.Recipes {
		if step.ID == "" {
			return nil, fmt.Errorf("%w: step %d", ErrMissingRecipeID, i)
		}
	}

	return plan, nil
}
