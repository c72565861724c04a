package service

import (
	"context"
	"errors"
	"time"

	"github.com/veloralabs/storefront_api/internal/models"
	"github.com/veloralabs/storefront_api/internal/repository"
	"github.com/veloralabs/storefront_api/internal/utils"
)

// OfferStore is the offer persistence needed by OfferService.
type OfferStore interface {
	Create(ctx context.Context, offer *models.Offer) error
	GetByID(ctx context.Context, id string) (*models.Offer, error)
	List(ctx context.Context) ([]models.Offer, error)
	ListValid(ctx context.Context, now time.Time) ([]models.Offer, error)
	Update(ctx context.Context, offer *models.Offer) error
	Delete(ctx context.Context, id string) error
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// OfferService implements promotional offer management.
type OfferService struct {
	offers OfferStore
}

// NewOfferService constructs an OfferService.
func NewOfferService(offers OfferStore) *OfferService {
	return &OfferService{offers: offers}
}

// OfferInput carries the admin-editable offer fields.
type OfferInput struct {
	Code          string              `json:"code"`
	Description   string              `json:"description"`
	DiscountType  models.DiscountType `json:"discount_type"`
	DiscountValue float64             `json:"discount_value"`
	ValidFrom     time.Time           `json:"valid_from"`
	ValidUntil    time.Time           `json:"valid_until"`
	UsageLimit    int                 `json:"usage_limit"`
	IsActive      bool                `json:"is_active"`
}

func validateOfferInput(in *OfferInput) error {
	if in.Code == "" {
		return utils.Invalid("code is required")
	}
	if !in.DiscountType.Valid() {
		return utils.Invalid("discount_type must be percentage or fixed")
	}
	if in.DiscountValue <= 0 {
		return utils.Invalid("discount_value must be positive")
	}
	if in.DiscountType == models.DiscountPercentage && in.DiscountValue > 100 {
		return utils.Invalid("percentage discount cannot exceed 100")
	}
	if in.ValidUntil.Before(in.ValidFrom) {
		return utils.Invalid("valid_from must not be after valid_until")
	}
	if in.UsageLimit < 0 {
		return utils.Invalid("usage_limit must be non-negative")
	}
	return nil
}

// Create adds a new offer.
func (s *OfferService) Create(ctx context.Context, in *OfferInput) (*models.Offer, error) {
	if err := validateOfferInput(in); err != nil {
		return nil, err
	}

	now := time.Now()
	offer := &models.Offer{
		ID:            utils.NewID("off"),
		Code:          in.Code,
		Description:   in.Description,
		DiscountType:  in.DiscountType,
		DiscountValue: in.DiscountValue,
		ValidFrom:     in.ValidFrom,
		ValidUntil:    in.ValidUntil,
		UsageLimit:    in.UsageLimit,
		IsActive:      in.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.offers.Create(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// Update edits an existing offer.
func (s *OfferService) Update(ctx context.Context, id string, in *OfferInput) (*models.Offer, error) {
	if err := validateOfferInput(in); err != nil {
		return nil, err
	}

	offer, err := s.offers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	offer.Code = in.Code
	offer.Description = in.Description
	offer.DiscountType = in.DiscountType
	offer.DiscountValue = in.DiscountValue
	offer.ValidFrom = in.ValidFrom
	offer.ValidUntil = in.ValidUntil
	offer.UsageLimit = in.UsageLimit
	offer.IsActive = in.IsActive

	if err := s.offers.Update(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// Delete removes an offer.
func (s *OfferService) Delete(ctx context.Context, id string) error {
	err := s.offers.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrNotFound
	}
	return err
}

// ListActive returns the offers currently applicable to the storefront.
func (s *OfferService) ListActive(ctx context.Context) ([]models.Offer, error) {
	return s.offers.ListValid(ctx, time.Now())
}

// ListAll returns every offer for the admin console.
func (s *OfferService) ListAll(ctx context.Context) ([]models.Offer, error) {
	return s.offers.List(ctx)
}

// ExpireOutdated deactivates offers past their validity window. Called
// by the offer expiry worker.
func (s *OfferService) ExpireOutdated(ctx context.Context) (int64, error) {
	return s.offers.DeactivateExpired(ctx, time.Now())
}
