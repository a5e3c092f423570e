package models

import "time"

type Category struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;not null;index" json:"name"`
	Slug        string  `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description *string `gorm:"type:text" json:"description"`
	Image       *string `gorm:"size:255" json:"image"`
	IsActive    bool    `gorm:"not null;index;index:idx_categories_active_sort,priority:1" json:"is_active"`
	SortOrder   int     `gorm:"not null;index:idx_categories_active_sort,priority:2" json:"sort_order"`

	// Set only by the admin queries that select it; nil elsewhere.
	FoodItemsCount *int64 `gorm:"->;-:migration" json:"food_items_count,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
