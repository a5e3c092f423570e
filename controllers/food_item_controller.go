package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appdotbuilder/food-catalog/models"
	"github.com/appdotbuilder/food-catalog/services"
	"github.com/appdotbuilder/food-catalog/utils"
)

type FoodItemController struct {
	Svc        *services.FoodItemService
	Categories *services.CategoryService
	Validator  *services.CatalogValidator
}

func NewFoodItemController(svc *services.FoodItemService, categories *services.CategoryService, v *services.CatalogValidator) *FoodItemController {
	return &FoodItemController{Svc: svc, Categories: categories, Validator: v}
}

type dietaryOption struct {
	Value models.DietaryType `json:"value"`
	Label string             `json:"label"`
}

func dietaryOptions() []dietaryOption {
	out := make([]dietaryOption, 0, len(models.DietaryTypes))
	for _, d := range models.DietaryTypes {
		out = append(out, dietaryOption{Value: d, Label: d.Label()})
	}
	return out
}

func (h *FoodItemController) Index(c *gin.Context) {
	page, err := h.Svc.List(c.Request.Context(), utils.ParsePage(c.Query("page")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Create returns what the create form needs to render.
func (h *FoodItemController) Create(c *gin.Context) {
	categories, err := h.Categories.FormOptions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories, "dietary_types": dietaryOptions()})
}

func (h *FoodItemController) Store(c *gin.Context) {
	raw, ok := readFields(c)
	if !ok {
		return
	}
	fields, err := h.Validator.ValidateFoodItem(c.Request.Context(), raw, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	item, err := h.Svc.Create(c.Request.Context(), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Food item created successfully.", item)
}

func (h *FoodItemController) Show(c *gin.Context) {
	id, ok := pathID(c, "food item")
	if !ok {
		return
	}
	item, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"food_item": item})
}

func (h *FoodItemController) Edit(c *gin.Context) {
	id, ok := pathID(c, "food item")
	if !ok {
		return
	}
	item, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	categories, err := h.Categories.FormOptions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"food_item": item, "categories": categories, "dietary_types": dietaryOptions()})
}

func (h *FoodItemController) Update(c *gin.Context) {
	id, ok := pathID(c, "food item")
	if !ok {
		return
	}
	// A missing record is reported before any field problems.
	if _, err := h.Svc.Get(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	raw, ok := readFields(c)
	if !ok {
		return
	}
	fields, err := h.Validator.ValidateFoodItem(c.Request.Context(), raw, id)
	if err != nil {
		respondError(c, err)
		return
	}
	item, err := h.Svc.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Food item updated successfully.", item)
}

func (h *FoodItemController) Destroy(c *gin.Context) {
	id, ok := pathID(c, "food item")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Food item deleted successfully.", nil)
}
