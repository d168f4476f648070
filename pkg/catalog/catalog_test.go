package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbraworks/darkfall/pkg/domain"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, c.WorldGenres())
	assert.NotEmpty(t, c.CharacterTraits())

	for _, trait := range c.CharacterTraits() {
		assert.Equal(t, domain.CategoryCharacterTrait, trait.Category)
		assert.NotEmpty(t, trait.Name)
	}
}

func TestDarknessOptionsExcludeTraits(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	grouped := c.DarknessOptions()
	_, hasTraits := grouped[domain.CategoryCharacterTrait]
	assert.False(t, hasTraits)

	for _, category := range domain.DarknessCategories() {
		assert.NotEmpty(t, grouped[category], "category %s should have options", category)
	}
}

func TestFindGenre(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	g, ok := c.FindGenre("中世ダークファンタジー")
	assert.True(t, ok)
	assert.Equal(t, int64(1), g.ID)

	_, ok = c.FindGenre("存在しないジャンル")
	assert.False(t, ok)
}

func TestFindOption(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	o, ok := c.FindOption(domain.CategoryMotive, "復讐心")
	assert.True(t, ok)
	assert.Equal(t, domain.CategoryMotive, o.Category)

	_, ok = c.FindOption(domain.CategoryAppearance, "復讐心")
	assert.False(t, ok)
}
