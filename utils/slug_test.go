package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Margherita Pizza":        "margherita-pizza",
		"  Main Courses  ":        "main-courses",
		"Fish & Chips":            "fish-chips",
		"BBQ -- Ribs!!":           "bbq-ribs",
		"Crème Brûlée (v2)":       "creme-brulee-v2",
		"---":                     "",
		"":                        "",
		"Tiramisu":                "tiramisu",
		"Pasta_Carbonara":         "pasta-carbonara",
		"100% Beef Burger #1":     "100-beef-burger-1",
		"already-a-slug":          "already-a-slug",
		"Gluten-Free   Brownies ": "gluten-free-brownies",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestSlugify_Deterministic(t *testing.T) {
	assert.Equal(t, Slugify("Caesar Salad"), Slugify("Caesar Salad"))
	assert.Equal(t, Slugify("caesar salad"), Slugify("CAESAR SALAD"))
}
