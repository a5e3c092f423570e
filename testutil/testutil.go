// Package testutil opens migrated in-memory databases and seeds catalog rows
// for package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/appdotbuilder/food-catalog/config"
	"github.com/appdotbuilder/food-catalog/models"
	"github.com/appdotbuilder/food-catalog/utils"
)

var dbSeq atomic.Int64

// NewDB returns a fresh, migrated SQLite database private to t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:catalog%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

// Category inserts an active category named name.
func Category(t testing.TB, db *gorm.DB, name string, opts ...func(*models.Category)) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, Slug: utils.Slugify(name), IsActive: true}
	for _, o := range opts {
		o(c)
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

// FoodItem inserts an available, non-featured item in category c.
func FoodItem(t testing.TB, db *gorm.DB, c *models.Category, name string, opts ...func(*models.FoodItem)) *models.FoodItem {
	t.Helper()
	item := &models.FoodItem{
		Name:        name,
		Slug:        utils.Slugify(name),
		Description: name + " description",
		Price:       models.MustPrice("9.99"),
		DietaryType: models.DietaryNone,
		IsAvailable: true,
		CategoryID:  c.ID,
	}
	for _, o := range opts {
		o(item)
	}
	require.NoError(t, db.Omit("Category").Create(item).Error)
	return item
}

func Featured(i *models.FoodItem) { i.IsFeatured = true }

func Unavailable(i *models.FoodItem) { i.IsAvailable = false }

func Dietary(d models.DietaryType) func(*models.FoodItem) {
	return func(i *models.FoodItem) { i.DietaryType = d }
}

func Described(desc string) func(*models.FoodItem) {
	return func(i *models.FoodItem) { i.Description = desc }
}

func Inactive(c *models.Category) { c.IsActive = false }

func SortOrder(n int) func(*models.Category) {
	return func(c *models.Category) { c.SortOrder = n }
}
