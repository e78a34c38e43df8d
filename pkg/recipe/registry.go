package recipe

import (
	"errors"
	"fmt"
)

// Sentinel registry errors.
var (
	ErrDuplicateRecipe = errors.New("recipe already registered")
	ErrUnknownRecipe   = errors.New("no registered recipe with this id")
	ErrEmptyRecipeID   = errors.New("recipe descriptor has an empty id")
)

// Registry manages the set of available recipes. Lookup is by descriptor ID;
// listing preserves registration order.
type Registry struct {
	entries map[string]Entry
	order   []string
}

// NewRegistry creates a registry pre-populated with the given recipes.
func NewRegistry(entries ...Entry) (*Registry, error) {
	registry := &Registry{entries: make(map[string]Entry, len(entries))}

	for _, entry := range entries {
		if err := registry.Register(entry); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// Register adds a recipe. Registering two recipes with the same ID is a
// wiring bug surfaced as an error, not a silent overwrite.
func (r *Registry) Register(entry Entry) error {
	id := entry.Descriptor().ID
	if id == "" {
		return ErrEmptyRecipeID
	}

	if _, exists := r.entries[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRecipe, id)
	}

	r.entries[id] = entry
	r.order = append(r.order, id)

	return nil
}

// Get returns the recipe registered under the ID.
func (r *Registry) Get(id string) (Entry, error) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecipe, id)
	}

	return entry, nil
}

// List returns the descriptors of all registered recipes in registration
// order.
func (r *Registry) List() []Descriptor {
	descriptors := make([]Descriptor, 0, len(r.order))

	for _, id := range r.order {
		descriptors = append(descriptors, r.entries[id].Descriptor())
	}

	return descriptors
}

// Len returns the number of registered recipes.
func (r *Registry) Len() int {
	return len(r.order)
}
