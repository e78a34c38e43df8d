package recipes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codemend/pkg/recipe"
	"github.com/Sumatoshi-tech/codemend/pkg/recipes"
)

func TestDefaultBundleIsRunnable(t *testing.T) {
	t.Parallel()

	entries := recipes.Default()
	require.NotEmpty(t, entries)

	seen := map[string]bool{}

	for _, entry := range entries {
		descriptor := entry.Descriptor()
		assert.NotEmpty(t, descriptor.ID)
		assert.NotEmpty(t, descriptor.Description)
		assert.False(t, seen[descriptor.ID], "duplicate id %s", descriptor.ID)
		seen[descriptor.ID] = true

		_, single := entry.(recipe.Recipe)
		_, scan := entry.(recipe.ScanRecipe)
		assert.True(t, single || scan, "%s implements no runnable contract", descriptor.ID)
	}
}

func TestDefaultReturnsFreshInstances(t *testing.T) {
	t.Parallel()

	first := recipes.Default()
	second := recipes.Default()

	for i := range first {
		assert.NotSame(t, first[i], second[i], "entry %d shared across calls", i)
	}
}

func TestDefaultRegistryResolvesBundledIDs(t *testing.T) {
	t.Parallel()

	registry := recipes.DefaultRegistry()
	assert.Equal(t, len(recipes.Default()), registry.Len())

	for _, descriptor := range registry.List() {
		entry, err := registry.Get(descriptor.ID)
		require.NoError(t, err)
		assert.Equal(t, descriptor.ID, entry.Descriptor().ID)
	}
}
