package models

import "time"

// A dish listed in the public catalog
type FoodItem struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"size:255;not null;index" json:"name"`
	Slug            string         `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	Price           Price          `gorm:"type:decimal(8,2);not null" json:"price"`
	Image           *string        `gorm:"size:255" json:"image"`
	Ingredients     []string       `gorm:"type:json;serializer:json" json:"ingredients"`
	NutritionalInfo map[string]any `gorm:"type:json;serializer:json" json:"nutritional_info"`
	DietaryType     DietaryType    `gorm:"type:varchar(20);not null;default:'none';index" json:"dietary_type"`
	IsAvailable     bool           `gorm:"not null;index;index:idx_food_items_available_featured,priority:1;index:idx_food_items_category_available,priority:2" json:"is_available"`
	IsFeatured      bool           `gorm:"not null;index;index:idx_food_items_available_featured,priority:2" json:"is_featured"`
	PreparationTime *int           `json:"preparation_time"` // minutes

	CategoryID uint      `gorm:"not null;index;index:idx_food_items_category_available,priority:1" json:"category_id"`
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
