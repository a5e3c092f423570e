package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appdotbuilder/food-catalog/services"
	"github.com/appdotbuilder/food-catalog/utils"
)

// BrowseObserver records how many items a catalog page returned.
type BrowseObserver interface {
	ObserveBrowse(items int)
}

type CatalogController struct {
	Svc      *services.CatalogService
	Observer BrowseObserver
}

func NewCatalogController(svc *services.CatalogService, obs BrowseObserver) *CatalogController {
	return &CatalogController{Svc: svc, Observer: obs}
}

// Index serves GET / and GET /api/catalog. An empty catalog always gets the
// welcome payload, whatever filters were sent.
func (h *CatalogController) Index(c *gin.Context) {
	ctx := c.Request.Context()

	empty, err := h.Svc.IsEmpty(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if empty {
		c.JSON(http.StatusOK, gin.H{"component": "welcome", "onboarding": true})
		return
	}

	filters := services.CatalogFilters{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Dietary:  c.Query("dietary"),
	}
	page, err := h.Svc.Browse(ctx, filters, utils.ParsePage(c.Query("page")))
	if err != nil {
		respondError(c, err)
		return
	}
	categories, err := h.Svc.ActiveCategories(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	featured, err := h.Svc.FeaturedHighlights(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if h.Observer != nil {
		h.Observer.ObserveBrowse(len(page.Items))
	}

	c.JSON(http.StatusOK, gin.H{
		"component":      "food-catalog",
		"food_items":     page,
		"categories":     categories,
		"featured_items": featured,
		"filters":        page.Filters,
		"dietary_types":  dietaryOptions(),
	})
}

// Show serves GET /food/:slug.
func (h *CatalogController) Show(c *gin.Context) {
	ctx := c.Request.Context()

	item, err := h.Svc.FindBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	related, err := h.Svc.RelatedTo(ctx, item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"component":     "food-item",
		"food_item":     item,
		"dietary_label": item.DietaryType.Label(),
		"related_items": related,
	})
}
