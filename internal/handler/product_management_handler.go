package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/veloralabs/storefront_api/internal/service"
	"github.com/veloralabs/storefront_api/internal/utils"
)

// ProductManagementHandler handles admin catalog management: products
// and categories.
type ProductManagementHandler struct {
	catalogService *service.CatalogService
}

// NewProductManagementHandler constructs a ProductManagementHandler.
func NewProductManagementHandler(catalogService *service.CatalogService) *ProductManagementHandler {
	return &ProductManagementHandler{catalogService: catalogService}
}

// CreateProduct creates a catalog product.
func (h *ProductManagementHandler) CreateProduct(c *gin.Context) {
	var in service.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &in)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(201, product)
}

// UpdateProduct edits an existing product.
func (h *ProductManagementHandler) UpdateProduct(c *gin.Context) {
	var in service.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, product)
}

// DeleteProduct removes a product.
func (h *ProductManagementHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalogService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"deleted": true})
}

// CreateCategory creates a category.
func (h *ProductManagementHandler) CreateCategory(c *gin.Context) {
	var in service.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), &in)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(201, category)
}

// UpdateCategory edits an existing category.
func (h *ProductManagementHandler) UpdateCategory(c *gin.Context) {
	var in service.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, category)
}

// DeleteCategory removes a category that has no children or products.
func (h *ProductManagementHandler) DeleteCategory(c *gin.Context) {
	if err := h.catalogService.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"deleted": true})
}
