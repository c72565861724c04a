package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/veloralabs/storefront_api/internal/service"
	"github.com/veloralabs/storefront_api/internal/utils"
)

// OfferHandler handles public offer listing and admin offer management.
type OfferHandler struct {
	offerService *service.OfferService
}

// NewOfferHandler constructs an OfferHandler.
func NewOfferHandler(offerService *service.OfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

// GetOffers returns the offers currently valid on the storefront.
func (h *OfferHandler) GetOffers(c *gin.Context) {
	offers, err := h.offerService.ListActive(c.Request.Context())
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"offers": offers})
}

// ListOffers returns every offer for the admin console.
func (h *OfferHandler) ListOffers(c *gin.Context) {
	offers, err := h.offerService.ListAll(c.Request.Context())
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"offers": offers})
}

// CreateOffer adds a new offer.
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	var in service.OfferInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	offer, err := h.offerService.Create(c.Request.Context(), &in)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(201, offer)
}

// UpdateOffer edits an existing offer.
func (h *OfferHandler) UpdateOffer(c *gin.Context) {
	var in service.OfferInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	offer, err := h.offerService.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, offer)
}

// DeleteOffer removes an offer.
func (h *OfferHandler) DeleteOffer(c *gin.Context) {
	if err := h.offerService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"deleted": true})
}
