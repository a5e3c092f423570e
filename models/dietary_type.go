package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DietaryType is the closed set of dietary classifications a FoodItem can carry.
// The zero value is invalid; obtain values through the constants or ParseDietaryType.
type DietaryType string

const (
	DietaryVegetarian DietaryType = "vegetarian"
	DietaryVegan      DietaryType = "vegan"
	DietaryGlutenFree DietaryType = "gluten_free"
	DietaryDairyFree  DietaryType = "dairy_free"
	DietaryNone       DietaryType = "none"
)

// DietaryTypes lists every valid value in display order.
var DietaryTypes = []DietaryType{
	DietaryVegetarian,
	DietaryVegan,
	DietaryGlutenFree,
	DietaryDairyFree,
	DietaryNone,
}

var dietaryLabels = map[DietaryType]string{
	DietaryVegetarian: "🥬 Vegetarian",
	DietaryVegan:      "🌱 Vegan",
	DietaryGlutenFree: "🌾 Gluten Free",
	DietaryDairyFree:  "🥛 Dairy Free",
	DietaryNone:       "🍽️ Regular",
}

func ParseDietaryType(s string) (DietaryType, error) {
	d := DietaryType(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown dietary type %q", s)
	}
	return d, nil
}

func (d DietaryType) Valid() bool {
	_, ok := dietaryLabels[d]
	return ok
}

func (d DietaryType) String() string { return string(d) }

// Label is the human readable badge shown next to an item.
func (d DietaryType) Label() string { return dietaryLabels[d] }

func (d DietaryType) Value() (driver.Value, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("refusing to store dietary type %q", string(d))
	}
	return string(d), nil
}

func (d *DietaryType) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into DietaryType", src)
	}
	parsed, err := ParseDietaryType(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *DietaryType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDietaryType(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
