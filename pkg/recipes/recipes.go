// Package recipes bundles the rewrite recipes shipped with the engine.
package recipes

import (
	"github.com/Sumatoshi-tech/codemend/pkg/recipe"
	"github.com/Sumatoshi-tech/codemend/pkg/recipes/emptyswitch"
	"github.com/Sumatoshi-tech/codemend/pkg/recipes/preferequals"
	"github.com/Sumatoshi-tech/codemend/pkg/recipes/simplifybool"
	"github.com/Sumatoshi-tech/codemend/pkg/recipes/unusedparam"
)

// Default returns fresh instances of every bundled recipe in registration
// order. Instances are fresh per call because configurable recipes carry
// plan-applied state.
func Default() []recipe.Entry {
	return []recipe.Entry{
		simplifybool.New(),
		emptyswitch.New(),
		unusedparam.New(),
		preferequals.New(),
	}
}

// DefaultRegistry returns a registry populated with the bundled recipes.
// Bundled IDs are unique by construction, so registration cannot fail.
func DefaultRegistry() *recipe.Registry {
	registry, err := recipe.NewRegistry(Default()...)
	if err != nil {
		panic(err)
	}

	return registry
}
