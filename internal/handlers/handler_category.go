package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/dto"
)

// categoryHandler handles HTTP requests for household categories.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
	userService     portssvc.UserSvcFacade
}

// registerCategoryRoutes registers the category routes.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade, userService portssvc.UserSvcFacade) {
	h := &categoryHandler{categoryService: categoryService, userService: userService}

	categories := rg.Group("/household/categories")
	{
		categories.GET("", h.listCategories)
		categories.POST("", h.createCategory)
		categories.DELETE("/:id", h.deleteCategory)
	}
}

// listCategories godoc
// @Summary List categories
// @Description Lists global default categories plus the caller's custom ones.
// @Tags categories
// @Produce json
// @Success 200 {array} domain.HouseholdCategory
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /household/categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to list categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// createCategory godoc
// @Summary Create a custom category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} domain.HouseholdCategory
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /household/categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, category)
}

// deleteCategory godoc
// @Summary Delete a custom category
// @Description Deletes one of the caller's custom categories. Defaults cannot be deleted.
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Default category"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /household/categories/{id} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete category")
		return
	}

	c.Status(http.StatusNoContent)
}
