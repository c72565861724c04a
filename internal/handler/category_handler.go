package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/veloralabs/storefront_api/internal/service"
	"github.com/veloralabs/storefront_api/internal/utils"
)

// CategoryHandler handles the public category endpoints.
type CategoryHandler struct {
	catalogService *service.CatalogService
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(catalogService *service.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalogService: catalogService}
}

// GetCategories returns all categories ordered for display.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"categories": categories})
}

// GetCategory returns a single category by slug.
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.catalogService.GetCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, category)
}
