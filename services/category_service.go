package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/appdotbuilder/food-catalog/models"
	"github.com/appdotbuilder/food-catalog/utils"
)

const AdminCategoryPageSize = 15

const foodItemsCountSelect = "categories.*, (SELECT COUNT(*) FROM food_items WHERE food_items.category_id = categories.id) AS food_items_count"

type CategoryService struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewCategoryService(db *gorm.DB, log *slog.Logger) *CategoryService {
	if log == nil {
		log = slog.Default()
	}
	return &CategoryService{db: db, log: log}
}

type CategoryPage struct {
	Items []models.Category `json:"data"`
	utils.Pagination
}

// List shows every category, active or not, with its item count.
func (s *CategoryService) List(ctx context.Context, page int) (*CategoryPage, error) {
	page = utils.NormalizePage(page)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting categories: %w", err)
	}

	categories := []models.Category{}
	if !utils.PastEnd(page, AdminCategoryPageSize, total) {
		err := s.db.WithContext(ctx).
			Model(&models.Category{}).
			Select(foodItemsCountSelect).
			Order("categories.name ASC").
			Order("categories.id ASC").
			Scopes(utils.Paginate(page, AdminCategoryPageSize)).
			Find(&categories).Error
		if err != nil {
			return nil, fmt.Errorf("listing categories: %w", err)
		}
	}
	return &CategoryPage{Items: categories, Pagination: utils.NewPagination(page, AdminCategoryPageSize, total)}, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).
		Model(&models.Category{}).
		Select(foodItemsCountSelect).
		Where("categories.id = ?", id).
		First(&category).Error
	if err != nil {
		return nil, notFoundOr(err, "category", id)
	}
	return &category, nil
}

// FormOptions lists the categories an item may be filed under.
func (s *CategoryService) FormOptions(ctx context.Context) ([]models.Category, error) {
	return NewCatalogService(s.db, s.log).ActiveCategories(ctx)
}

func (s *CategoryService) Create(ctx context.Context, fields *CategoryFields) (*models.Category, error) {
	if fields == nil {
		return nil, &ValidationError{Fields: map[string]string{"_": "No validated category fields supplied."}}
	}
	category := models.Category{}
	applyCategoryFields(&category, fields)

	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, translateWriteError(err, "A category with this name already exists.")
	}
	s.log.InfoContext(ctx, "category created", "id", category.ID, "slug", category.Slug)
	return s.Get(ctx, category.ID)
}

func (s *CategoryService) Update(ctx context.Context, id uint, fields *CategoryFields) (*models.Category, error) {
	if fields == nil {
		return nil, &ValidationError{Fields: map[string]string{"_": "No validated category fields supplied."}}
	}
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, notFoundOr(err, "category", id)
	}
	applyCategoryFields(&category, fields)

	if err := s.db.WithContext(ctx).Save(&category).Error; err != nil {
		return nil, translateWriteError(err, "A category with this name already exists.")
	}
	s.log.InfoContext(ctx, "category updated", "id", category.ID, "slug", category.Slug)
	return s.Get(ctx, category.ID)
}

// Delete refuses while any food item still belongs to the category. The row
// lock, dependent count and delete share one transaction so an item cannot
// be filed under the category in between.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
		}
		if err := q.First(&category, id).Error; err != nil {
			return notFoundOr(err, "category", id)
		}

		var dependents int64
		if err := tx.Model(&models.FoodItem{}).Where("category_id = ?", id).Count(&dependents).Error; err != nil {
			return fmt.Errorf("counting items in category %d: %w", id, err)
		}
		if dependents > 0 {
			return &DependencyConflictError{Resource: "category", ID: id, Dependents: dependents}
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		return err
	}
	s.log.InfoContext(ctx, "category deleted", "id", id)
	return nil
}

func applyCategoryFields(c *models.Category, f *CategoryFields) {
	c.Name = f.Name
	c.Slug = f.Slug
	c.Description = f.Description
	c.Image = f.Image
	c.IsActive = f.IsActive
	c.SortOrder = f.SortOrder
}
