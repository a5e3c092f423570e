package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/appdotbuilder/food-catalog/models"
)

// CatalogFilters are the optional public browse filters. Empty means "not set".
type CatalogFilters struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Dietary  string `json:"dietary"`
}

// Normalize trims every filter so blank values count as absent.
func (f CatalogFilters) Normalize() CatalogFilters {
	return CatalogFilters{
		Search:   strings.TrimSpace(f.Search),
		Category: strings.TrimSpace(f.Category),
		Dietary:  strings.TrimSpace(f.Dietary),
	}
}

// Condition is one SQL boolean expression with its bind arguments.
type Condition struct {
	SQL  string
	Args []any
}

// Predicate is a conjunction of conditions over food_items.
type Predicate []Condition

// Apply attaches every condition to q with AND.
func (p Predicate) Apply(q *gorm.DB) *gorm.DB {
	for _, c := range p {
		q = q.Where(c.SQL, c.Args...)
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// CatalogPredicate builds the public browse predicate. Availability is always
// part of it; the optional filters are ANDed on top and the search term
// matches name OR description case-insensitively.
func CatalogPredicate(f CatalogFilters) Predicate {
	f = f.Normalize()
	p := Predicate{{SQL: "food_items.is_available = ?", Args: []any{true}}}

	if f.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(f.Search)) + "%"
		p = append(p, Condition{
			SQL:  `(LOWER(food_items.name) LIKE ? ESCAPE '\' OR LOWER(food_items.description) LIKE ? ESCAPE '\')`,
			Args: []any{pattern, pattern},
		})
	}
	if f.Category != "" {
		p = append(p, Condition{
			SQL:  "food_items.category_id IN (SELECT categories.id FROM categories WHERE categories.slug = ?)",
			Args: []any{f.Category},
		})
	}
	if f.Dietary != "" {
		if d, err := models.ParseDietaryType(f.Dietary); err == nil {
			p = append(p, Condition{SQL: "food_items.dietary_type = ?", Args: []any{d}})
		} else {
			// No item can carry an unknown dietary type.
			p = append(p, Condition{SQL: "1 = 0"})
		}
	}
	return p
}
