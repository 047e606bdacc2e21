package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack-api/internal/models"
	"fintrack-api/internal/service"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// List handles GET /api/categories
func (cc *CategoryController) List(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	categories, err := cc.categoryService.List(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, "list categories", err)
		return
	}

	c.JSON(http.StatusOK, models.NewCategoryListResponse(categories))
}

// Create handles POST /api/categories
func (cc *CategoryController) Create(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req models.CreateCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, "create category", err)
		return
	}

	category, err := cc.categoryService.Create(c.Request.Context(), identity.UserID, req.Name)
	if err != nil {
		respondError(c, "create category", err)
		return
	}

	c.JSON(http.StatusCreated, models.CategoryEnvelope{Category: models.NewCategoryResponse(category)})
}

// Delete handles DELETE /api/categories/:id
func (cc *CategoryController) Delete(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	if err := cc.categoryService.Delete(c.Request.Context(), identity.UserID, id); err != nil {
		respondError(c, "delete category", err)
		return
	}

	c.Status(http.StatusNoContent)
}
