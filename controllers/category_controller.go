package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appdotbuilder/food-catalog/services"
	"github.com/appdotbuilder/food-catalog/utils"
)

type CategoryController struct {
	Svc       *services.CategoryService
	Validator *services.CatalogValidator
}

func NewCategoryController(svc *services.CategoryService, v *services.CatalogValidator) *CategoryController {
	return &CategoryController{Svc: svc, Validator: v}
}

func (h *CategoryController) Index(c *gin.Context) {
	page, err := h.Svc.List(c.Request.Context(), utils.ParsePage(c.Query("page")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Create has nothing to preload; it only confirms the route for form clients.
func (h *CategoryController) Create(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"category": nil})
}

func (h *CategoryController) Store(c *gin.Context) {
	raw, ok := readFields(c)
	if !ok {
		return
	}
	fields, err := h.Validator.ValidateCategory(c.Request.Context(), raw, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	category, err := h.Svc.Create(c.Request.Context(), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Category created successfully.", category)
}

func (h *CategoryController) Show(c *gin.Context) {
	id, ok := pathID(c, "category")
	if !ok {
		return
	}
	category, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

func (h *CategoryController) Edit(c *gin.Context) {
	h.Show(c)
}

func (h *CategoryController) Update(c *gin.Context) {
	id, ok := pathID(c, "category")
	if !ok {
		return
	}
	if _, err := h.Svc.Get(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	raw, ok := readFields(c)
	if !ok {
		return
	}
	fields, err := h.Validator.ValidateCategory(c.Request.Context(), raw, id)
	if err != nil {
		respondError(c, err)
		return
	}
	category, err := h.Svc.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Category updated successfully.", category)
}

// Destroy answers 409 with the item count while the category is in use.
func (h *CategoryController) Destroy(c *gin.Context) {
	id, ok := pathID(c, "category")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Category deleted successfully.", nil)
}
