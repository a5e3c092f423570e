package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appdotbuilder/food-catalog/models"
)

func TestCatalogPredicate_AvailabilityAlwaysFirst(t *testing.T) {
	for _, f := range []CatalogFilters{
		{},
		{Search: "pizza"},
		{Category: "appetizers", Dietary: "vegan"},
		{Search: "x", Category: "y", Dietary: "bogus"},
	} {
		p := CatalogPredicate(f)
		require.NotEmpty(t, p)
		assert.Equal(t, "food_items.is_available = ?", p[0].SQL)
		assert.Equal(t, []any{true}, p[0].Args)
	}
}

func TestCatalogPredicate_BlankFiltersIgnored(t *testing.T) {
	p := CatalogPredicate(CatalogFilters{Search: "   ", Category: "", Dietary: "\t"})
	assert.Len(t, p, 1)
}

func TestCatalogPredicate_SearchIsOrOverNameAndDescription(t *testing.T) {
	p := CatalogPredicate(CatalogFilters{Search: " PiZZa "})
	require.Len(t, p, 2)
	assert.Contains(t, p[1].SQL, "LOWER(food_items.name) LIKE ?")
	assert.Contains(t, p[1].SQL, " OR LOWER(food_items.description) LIKE ?")
	assert.Equal(t, []any{"%pizza%", "%pizza%"}, p[1].Args)
}

func TestCatalogPredicate_SearchEscapesWildcards(t *testing.T) {
	p := CatalogPredicate(CatalogFilters{Search: `50%_off\`})
	require.Len(t, p, 2)
	assert.Equal(t, `%50\%\_off\\%`, p[1].Args[0])
}

func TestCatalogPredicate_CategoryAndDietary(t *testing.T) {
	p := CatalogPredicate(CatalogFilters{Category: "main-courses", Dietary: "gluten_free"})
	require.Len(t, p, 3)
	assert.Contains(t, p[1].SQL, "categories.slug = ?")
	assert.Equal(t, []any{"main-courses"}, p[1].Args)
	assert.Equal(t, "food_items.dietary_type = ?", p[2].SQL)
	assert.Equal(t, []any{models.DietaryGlutenFree}, p[2].Args)
}

func TestCatalogPredicate_UnknownDietaryMatchesNothing(t *testing.T) {
	p := CatalogPredicate(CatalogFilters{Dietary: "carnivore"})
	require.Len(t, p, 2)
	assert.Equal(t, "1 = 0", p[1].SQL)
}
