package recipe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codemend/pkg/recipe"
	"github.com/Sumatoshi-tech/codemend/pkg/visit"
)

type fakeRecipe struct {
	descriptor recipe.Descriptor
}

func (f *fakeRecipe) Descriptor() recipe.Descriptor { return f.descriptor }
func (f *fakeRecipe) Visitor() visit.Visitor        { return visit.Identity }

func named(displayName string) *fakeRecipe {
	return &fakeRecipe{descriptor: recipe.NewDescriptor(displayName, "test recipe")}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	t.Parallel()

	registry, err := recipe.NewRegistry(named("FirstRecipe"), named("SecondRecipe"))
	require.NoError(t, err)

	entry, err := registry.Get("first-recipe")
	require.NoError(t, err)
	assert.Equal(t, "FirstRecipe", entry.Descriptor().DisplayName)

	assert.Equal(t, 2, registry.Len())
}

func TestRegistryDuplicateID(t *testing.T) {
	t.Parallel()

	_, err := recipe.NewRegistry(named("SameName"), named("SameName"))
	require.ErrorIs(t, err, recipe.ErrDuplicateRecipe)
}

func TestRegistryEmptyID(t *testing.T) {
	t.Parallel()

	registry, err := recipe.NewRegistry()
	require.NoError(t, err)

	err = registry.Register(&fakeRecipe{})
	require.ErrorIs(t, err, recipe.ErrEmptyRecipeID)
}

func TestRegistryUnknownID(t *testing.T) {
	t.Parallel()

	registry, err := recipe.NewRegistry(named("OnlyRecipe"))
	require.NoError(t, err)

	_, err = registry.Get("missing")
	require.ErrorIs(t, err, recipe.ErrUnknownRecipe)
}

func TestRegistryListPreservesRegistrationOrder(t *testing.T) {
	t.Parallel()

	registry, err := recipe.NewRegistry(named("Bravo"), named("Alpha"), named("Charlie"))
	require.NoError(t, err)

	descriptors := registry.List()
	require.Len(t, descriptors, 3)
	assert.Equal(t, "bravo", descriptors[0].ID)
	assert.Equal(t, "alpha", descriptors[1].ID)
	assert.Equal(t, "charlie", descriptors[2].ID)
}

func TestNormalizeID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"camel case", "SimplifyBooleanExpression", "simplify-boolean-expression"},
		{"underscores", "remove_unused_parameter", "remove-unused-parameter"},
		{"spaces", "Prefer Objects Equals", "prefer-objects-equals"},
		{"already kebab", "unwrap-switch", "unwrap-switch"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, recipe.NormalizeID(tt.in))
		})
	}
}
