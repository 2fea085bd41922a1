package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Equal(t, 31, c.Len())

	byCategory := map[Category]int{}
	seenIDs := map[string]bool{}
	seenOrders := map[int]bool{}
	for _, d := range c.All() {
		assert.NotEmpty(t, d.SkillID)
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.Description)
		assert.NotEmpty(t, d.RelatedLessons, d.SkillID)
		assert.NotEmpty(t, d.RelatedExercises, d.SkillID)

		assert.False(t, seenIDs[d.SkillID], "duplicate skill id %s", d.SkillID)
		seenIDs[d.SkillID] = true
		assert.False(t, seenOrders[d.Order], "duplicate order %d", d.Order)
		seenOrders[d.Order] = true

		byCategory[d.Category]++
	}

	assert.Equal(t, 15, byCategory[Orthography])
	assert.Equal(t, 16, byCategory[Punctuation])
}

func TestCatalogGet(t *testing.T) {
	c := Default()

	d, ok := c.Get("vowels-checked")
	require.True(t, ok)
	assert.Equal(t, "Проверяемые безударные гласные", d.Name)
	assert.Equal(t, Orthography, d.Category)

	_, ok = c.Get("no-such-skill")
	assert.False(t, ok)
}

func TestCatalogAllIsCopy(t *testing.T) {
	c := Default()

	defs := c.All()
	defs[0].Name = "испорчено"

	again := c.All()
	assert.NotEqual(t, "испорчено", again[0].Name)
}

func TestLevelsMetadata(t *testing.T) {
	assert.Equal(t, "Не изучен", Levels[0].Name)
	assert.Equal(t, "Мастер", Levels[5].Name)
	for _, l := range Levels {
		assert.NotEmpty(t, l.Color)
		assert.NotEmpty(t, l.Emoji)
	}
}
