package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/appdotbuilder/food-catalog/models"
	"github.com/appdotbuilder/food-catalog/utils"
)

const AdminFoodItemPageSize = 10

// FoodItemService is the admin side of food items: every item is visible,
// available or not.
type FoodItemService struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewFoodItemService(db *gorm.DB, log *slog.Logger) *FoodItemService {
	if log == nil {
		log = slog.Default()
	}
	return &FoodItemService{db: db, log: log}
}

type FoodItemPage struct {
	Items []models.FoodItem `json:"data"`
	utils.Pagination
}

func (s *FoodItemService) List(ctx context.Context, page int) (*FoodItemPage, error) {
	page = utils.NormalizePage(page)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.FoodItem{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting food items: %w", err)
	}

	items := []models.FoodItem{}
	if !utils.PastEnd(page, AdminFoodItemPageSize, total) {
		err := s.db.WithContext(ctx).
			Preload("Category").
			Order("name ASC").
			Order("id ASC").
			Scopes(utils.Paginate(page, AdminFoodItemPageSize)).
			Find(&items).Error
		if err != nil {
			return nil, fmt.Errorf("listing food items: %w", err)
		}
	}
	return &FoodItemPage{Items: items, Pagination: utils.NewPagination(page, AdminFoodItemPageSize, total)}, nil
}

func (s *FoodItemService) Get(ctx context.Context, id uint) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := s.db.WithContext(ctx).Preload("Category").First(&item, id).Error; err != nil {
		return nil, notFoundOr(err, "food item", id)
	}
	return &item, nil
}

func (s *FoodItemService) Create(ctx context.Context, fields *FoodItemFields) (*models.FoodItem, error) {
	if fields == nil {
		return nil, &ValidationError{Fields: map[string]string{"_": "No validated food item fields supplied."}}
	}
	item := models.FoodItem{}
	applyFoodItemFields(&item, fields)

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&item).Error; err != nil {
		return nil, translateWriteError(err, "A food item with this name already exists.")
	}
	s.log.InfoContext(ctx, "food item created", "id", item.ID, "slug", item.Slug)
	return s.Get(ctx, item.ID)
}

// Update overwrites every column with the validated fields, zero values included.
func (s *FoodItemService) Update(ctx context.Context, id uint, fields *FoodItemFields) (*models.FoodItem, error) {
	if fields == nil {
		return nil, &ValidationError{Fields: map[string]string{"_": "No validated food item fields supplied."}}
	}
	var item models.FoodItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFoundOr(err, "food item", id)
	}
	applyFoodItemFields(&item, fields)

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(&item).Error; err != nil {
		return nil, translateWriteError(err, "A food item with this name already exists.")
	}
	s.log.InfoContext(ctx, "food item updated", "id", item.ID, "slug", item.Slug)
	return s.Get(ctx, item.ID)
}

// Delete removes the item unconditionally; nothing depends on food items.
func (s *FoodItemService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.FoodItem{}, id)
	if res.Error != nil {
		return fmt.Errorf("deleting food item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Resource: "food item", Key: id}
	}
	s.log.InfoContext(ctx, "food item deleted", "id", id)
	return nil
}

func applyFoodItemFields(item *models.FoodItem, f *FoodItemFields) {
	item.Name = f.Name
	item.Slug = f.Slug
	item.Description = f.Description
	item.Price = f.Price
	item.Image = f.Image
	item.Ingredients = f.Ingredients
	item.NutritionalInfo = f.NutritionalInfo
	item.DietaryType = f.DietaryType
	item.IsAvailable = f.IsAvailable
	item.IsFeatured = f.IsFeatured
	item.PreparationTime = f.PreparationTime
	item.CategoryID = f.CategoryID
	item.Category = nil
}

// translateWriteError turns a unique slug race lost after validation into a
// ValidationError and a vanished category into one on category_id.
func translateWriteError(err error, slugMessage string) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &ValidationError{Fields: map[string]string{"slug": slugMessage}}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &ValidationError{Fields: map[string]string{"category_id": "Please select a valid category."}}
	}
	return fmt.Errorf("saving record: %w", err)
}
