package models

import (
	"gorm.io/gorm"
)

// Administrator account allowed to manage the catalog
type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Name     string `json:"name"`
}
