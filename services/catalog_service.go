package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/appdotbuilder/food-catalog/models"
	"github.com/appdotbuilder/food-catalog/utils"
)

const (
	CatalogPageSize      = 12
	featuredHighlightMax = 6
	relatedItemsMax      = 4
)

// CatalogService answers the public, read-only catalog queries.
type CatalogService struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewCatalogService(db *gorm.DB, log *slog.Logger) *CatalogService {
	if log == nil {
		log = slog.Default()
	}
	return &CatalogService{db: db, log: log}
}

type CatalogPage struct {
	Items   []models.FoodItem `json:"data"`
	Filters CatalogFilters    `json:"filters"`
	utils.Pagination
}

// Browse returns one page of available items matching f, featured items
// first and then by name. A page past the end yields no items.
func (s *CatalogService) Browse(ctx context.Context, f CatalogFilters, page int) (*CatalogPage, error) {
	f = f.Normalize()
	page = utils.NormalizePage(page)
	pred := CatalogPredicate(f)

	var total int64
	if err := pred.Apply(s.db.WithContext(ctx).Model(&models.FoodItem{})).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting catalog items: %w", err)
	}

	items := []models.FoodItem{}
	if !utils.PastEnd(page, CatalogPageSize, total) {
		err := pred.Apply(s.db.WithContext(ctx).Model(&models.FoodItem{})).
			Preload("Category").
			Order("food_items.is_featured DESC").
			Order("food_items.name ASC").
			Order("food_items.id ASC").
			Scopes(utils.Paginate(page, CatalogPageSize)).
			Find(&items).Error
		if err != nil {
			return nil, fmt.Errorf("listing catalog items: %w", err)
		}
	}

	s.log.DebugContext(ctx, "catalog browse",
		"search", f.Search, "category", f.Category, "dietary", f.Dietary,
		"page", page, "total", total)

	return &CatalogPage{
		Items:      items,
		Filters:    f,
		Pagination: utils.NewPagination(page, CatalogPageSize, total),
	}, nil
}

// IsEmpty reports whether the catalog has no items at all, regardless of
// availability or any filter. Callers show the onboarding page in that case.
func (s *CatalogService) IsEmpty(ctx context.Context) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.FoodItem{}).Count(&n).Error; err != nil {
		return false, fmt.Errorf("counting food items: %w", err)
	}
	return n == 0, nil
}

func (s *CatalogService) FeaturedHighlights(ctx context.Context) ([]models.FoodItem, error) {
	items := []models.FoodItem{}
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("is_available = ? AND is_featured = ?", true, true).
		Order("id ASC").
		Limit(featuredHighlightMax).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("listing featured items: %w", err)
	}
	return items, nil
}

// RelatedTo returns other available items from the same category as item.
func (s *CatalogService) RelatedTo(ctx context.Context, item *models.FoodItem) ([]models.FoodItem, error) {
	items := []models.FoodItem{}
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("is_available = ? AND category_id = ? AND id <> ?", true, item.CategoryID, item.ID).
		Order("id ASC").
		Limit(relatedItemsMax).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("listing items related to %d: %w", item.ID, err)
	}
	return items, nil
}

func (s *CatalogService) ActiveCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Order("name ASC").
		Order("id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("listing active categories: %w", err)
	}
	return categories, nil
}

// FindBySlug loads the detail page item with its category.
func (s *CatalogService) FindBySlug(ctx context.Context, slug string) (*models.FoodItem, error) {
	var item models.FoodItem
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ?", slug).
		First(&item).Error
	if err != nil {
		return nil, notFoundOr(err, "food item", slug)
	}
	return &item, nil
}
