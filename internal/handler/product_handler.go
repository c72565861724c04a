package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/veloralabs/storefront_api/internal/repository"
	"github.com/veloralabs/storefront_api/internal/service"
	"github.com/veloralabs/storefront_api/internal/utils"
)

// ProductHandler handles the public catalog endpoints.
type ProductHandler struct {
	catalogService *service.CatalogService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(catalogService *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// boolQuery parses an optional boolean query parameter. Absent or
// unparsable values mean "no filter".
func boolQuery(c *gin.Context, name string) *bool {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

// GetProducts returns the product list with optional filters and pagination.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	filter := &repository.ProductFilter{
		CategoryID:   c.Query("category_id"),
		IsFeatured:   boolQuery(c, "is_featured"),
		IsNewArrival: boolQuery(c, "is_new_arrival"),
		IsHotDeal:    boolQuery(c, "is_hot_deal"),
		Search:       c.Query("search"),
		Page:         1,
		Limit:        50,
	}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}

	products, total, err := h.catalogService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	c.JSON(200, gin.H{
		"products":   products,
		"pagination": utils.NewPagination(filter.Page, filter.Limit, total),
	})
}

// GetProduct returns a single product by slug.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, product)
}
