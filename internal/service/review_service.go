package service

import (
	"context"
	"errors"
	"time"

	"github.com/veloralabs/storefront_api/internal/models"
	"github.com/veloralabs/storefront_api/internal/repository"
	"github.com/veloralabs/storefront_api/internal/utils"
)

// ReviewStore is the review persistence needed by ReviewService.
type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	ListByProduct(ctx context.Context, productID string, status models.ReviewStatus) ([]models.Review, error)
	ListByStatus(ctx context.Context, status models.ReviewStatus) ([]models.Review, error)
	UpdateStatus(ctx context.Context, id string, status models.ReviewStatus) error
}

// reviewProductStore resolves product slugs for review operations.
type reviewProductStore interface {
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
}

// ReviewService implements review submission and moderation.
type ReviewService struct {
	reviews  ReviewStore
	products reviewProductStore
}

// NewReviewService constructs a ReviewService.
func NewReviewService(reviews ReviewStore, products reviewProductStore) *ReviewService {
	return &ReviewService{reviews: reviews, products: products}
}

// Add submits a review for the product with the given slug. New
// reviews always start Pending and only appear publicly once approved.
func (s *ReviewService) Add(ctx context.Context, userID, productSlug string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, utils.Invalid("rating must be between 1 and 5")
	}

	product, err := s.products.GetBySlug(ctx, productSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	review := &models.Review{
		ID:        utils.NewID("rev"),
		ProductID: product.ID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		Status:    models.ReviewPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListApproved returns the approved reviews of a product.
func (s *ReviewService) ListApproved(ctx context.Context, productSlug string) ([]models.Review, error) {
	product, err := s.products.GetBySlug(ctx, productSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return s.reviews.ListByProduct(ctx, product.ID, models.ReviewApproved)
}

// Queue returns the pending moderation queue, oldest first.
func (s *ReviewService) Queue(ctx context.Context) ([]models.Review, error) {
	return s.reviews.ListByStatus(ctx, models.ReviewPending)
}

// Moderate sets a review to Approved or Flagged.
func (s *ReviewService) Moderate(ctx context.Context, reviewID string, status models.ReviewStatus) error {
	if status != models.ReviewApproved && status != models.ReviewFlagged {
		return utils.Invalid("status must be Approved or Flagged")
	}
	err := s.reviews.UpdateStatus(ctx, reviewID, status)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrNotFound
	}
	return err
}
