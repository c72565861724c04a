package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/veloralabs/storefront_api/internal/models"
	"github.com/veloralabs/storefront_api/internal/repository"
	"github.com/veloralabs/storefront_api/internal/utils"
)

// ProductStore is the product persistence needed by CatalogService.
type ProductStore interface {
	List(ctx context.Context, f *repository.ProductFilter) ([]models.Product, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}

// CategoryStore is the category persistence needed by CatalogService.
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, cat *models.Category) error
	Update(ctx context.Context, cat *models.Category) error
	Delete(ctx context.Context, id string) error
	CountChildren(ctx context.Context, id string) (int64, error)
}

// ListingCache caches product listing results. Implemented by
// cache.CatalogCache; a nil cache means every read goes to the store.
type ListingCache interface {
	GetProducts(ctx context.Context, filterKey string) ([]models.Product, int64, bool)
	SetProducts(ctx context.Context, filterKey string, products []models.Product, total int64)
	Invalidate(ctx context.Context)
}

// CatalogService provides catalog browsing and admin catalog management.
type CatalogService struct {
	products   ProductStore
	categories CategoryStore
	cache      ListingCache
}

// NewCatalogService constructs a CatalogService. cache may be nil.
func NewCatalogService(products ProductStore, categories CategoryStore, cache ListingCache) *CatalogService {
	return &CatalogService{products: products, categories: categories, cache: cache}
}

// filterKey renders a filter into a stable cache key fragment.
func filterKey(f *repository.ProductFilter) string {
	b := func(p *bool) string {
		if p == nil {
			return "-"
		}
		return fmt.Sprintf("%t", *p)
	}
	return fmt.Sprintf("%s:%s:%s:%s:%s:%d:%d",
		f.CategoryID, b(f.IsFeatured), b(f.IsNewArrival), b(f.IsHotDeal),
		strings.ToLower(f.Search), f.Page, f.Limit)
}

// ListProducts returns products matching the filter and the total
// match count. All provided filters combine with AND; an unknown
// category id yields an empty list, not an error.
func (s *CatalogService) ListProducts(ctx context.Context, f *repository.ProductFilter) ([]models.Product, int64, error) {
	key := ""
	if s.cache != nil {
		key = filterKey(f)
		if products, total, ok := s.cache.GetProducts(ctx, key); ok {
			return products, total, nil
		}
	}

	products, total, err := s.products.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	if s.cache != nil {
		s.cache.SetProducts(ctx, key, products, total)
	}
	return products, total, nil
}

// GetProduct returns one product by slug.
func (s *CatalogService) GetProduct(ctx context.Context, slug string) (*models.Product, error) {
	p, err := s.products.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.ErrNotFound
	}
	return p, err
}

// ProductInput carries the admin-editable product fields.
type ProductInput struct {
	Slug            string   `json:"slug"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Tags            []string `json:"tags"`
	CategoryID      string   `json:"category_id"`
	BasePrice       float64  `json:"base_price"`
	DiscountPercent float64  `json:"discount_percent"`
	StockQuantity   int      `json:"stock_quantity"`
	ImageURL        string   `json:"image_url"`
	IsFeatured      bool     `json:"is_featured"`
	IsNewArrival    bool     `json:"is_new_arrival"`
	IsHotDeal       bool     `json:"is_hot_deal"`
}

func (s *CatalogService) validateProductInput(ctx context.Context, in *ProductInput) error {
	if in.Slug == "" || in.Name == "" {
		return utils.Invalid("slug and name are required")
	}
	if in.BasePrice < 0 {
		return utils.Invalid("base_price must be non-negative")
	}
	if in.DiscountPercent < 0 || in.DiscountPercent > 100 {
		return utils.Invalid("discount_percent must be between 0 and 100")
	}
	if in.StockQuantity < 0 {
		return utils.Invalid("stock_quantity must be non-negative")
	}
	if in.CategoryID != "" {
		if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return utils.Invalid("category_id does not reference an existing category")
			}
			return err
		}
	}
	return nil
}

// CreateProduct creates a catalog product.
func (s *CatalogService) CreateProduct(ctx context.Context, in *ProductInput) (*models.Product, error) {
	if err := s.validateProductInput(ctx, in); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &models.Product{
		ID:              utils.NewID("prod"),
		Slug:            in.Slug,
		Name:            in.Name,
		Description:     in.Description,
		Tags:            in.Tags,
		CategoryID:      in.CategoryID,
		BasePrice:       in.BasePrice,
		DiscountPercent: in.DiscountPercent,
		StockQuantity:   in.StockQuantity,
		ImageURL:        in.ImageURL,
		IsFeatured:      in.IsFeatured,
		IsNewArrival:    in.IsNewArrival,
		IsHotDeal:       in.IsHotDeal,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.products.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.ErrSlugTaken
		}
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

// UpdateProduct replaces the editable fields of an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in *ProductInput) (*models.Product, error) {
	if err := s.validateProductInput(ctx, in); err != nil {
		return nil, err
	}

	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	if in.Slug != p.Slug {
		if _, err := s.products.GetBySlug(ctx, in.Slug); err == nil {
			return nil, utils.ErrSlugTaken
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	p.Slug = in.Slug
	p.Name = in.Name
	p.Description = in.Description
	p.Tags = in.Tags
	p.CategoryID = in.CategoryID
	p.BasePrice = in.BasePrice
	p.DiscountPercent = in.DiscountPercent
	p.StockQuantity = in.StockQuantity
	p.ImageURL = in.ImageURL
	p.IsFeatured = in.IsFeatured
	p.IsNewArrival = in.IsNewArrival
	p.IsHotDeal = in.IsHotDeal

	if err := s.products.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.ErrSlugTaken
		}
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

// DeleteProduct removes a product.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.ErrNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ListCategories returns all categories ordered by display_order.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

// GetCategory returns one category by slug.
func (s *CatalogService) GetCategory(ctx context.Context, slug string) (*models.Category, error) {
	cat, err := s.categories.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.ErrNotFound
	}
	return cat, err
}

// CategoryInput carries the admin-editable category fields.
type CategoryInput struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	ParentID     string `json:"parent_id"`
	DisplayOrder int    `json:"display_order"`
}

// checkParent verifies the parent exists and that linking selfID under
// it would not close a cycle in the category tree.
func (s *CatalogService) checkParent(ctx context.Context, selfID, parentID string) error {
	for hops := 0; parentID != ""; hops++ {
		if parentID == selfID {
			return utils.Invalid("parent_id would create a category cycle")
		}
		// A depth bound keeps a corrupted tree from spinning forever.
		if hops > 100 {
			return utils.Invalid("category tree is too deep")
		}
		parent, err := s.categories.GetByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return utils.Invalid("parent_id does not reference an existing category")
			}
			return err
		}
		parentID = parent.ParentID
	}
	return nil
}

// CreateCategory creates a category, enforcing parent existence and an
// acyclic tree.
func (s *CatalogService) CreateCategory(ctx context.Context, in *CategoryInput) (*models.Category, error) {
	if in.Slug == "" || in.Name == "" {
		return nil, utils.Invalid("slug and name are required")
	}

	id := utils.NewID("cat")
	if in.ParentID != "" {
		if err := s.checkParent(ctx, id, in.ParentID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	cat := &models.Category{
		ID:           id,
		Slug:         in.Slug,
		Name:         in.Name,
		ParentID:     in.ParentID,
		DisplayOrder: in.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.categories.Create(ctx, cat); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.ErrSlugTaken
		}
		return nil, err
	}
	s.invalidate(ctx)
	return cat, nil
}

// UpdateCategory edits an existing category with the same parent checks.
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, in *CategoryInput) (*models.Category, error) {
	if in.Slug == "" || in.Name == "" {
		return nil, utils.Invalid("slug and name are required")
	}

	cat, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	if in.ParentID != "" {
		if err := s.checkParent(ctx, id, in.ParentID); err != nil {
			return nil, err
		}
	}

	cat.Slug = in.Slug
	cat.Name = in.Name
	cat.ParentID = in.ParentID
	cat.DisplayOrder = in.DisplayOrder

	if err := s.categories.Update(ctx, cat); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.ErrSlugTaken
		}
		return nil, err
	}
	s.invalidate(ctx)
	return cat, nil
}

// DeleteCategory removes a category. Categories that still have
// children or products are refused to keep references valid.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	children, err := s.categories.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return utils.Invalid("category still has child categories")
	}
	inUse, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return utils.Invalid("category still has products")
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.ErrNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx)
	log.Debug().Msg("catalog cache invalidated")
}
