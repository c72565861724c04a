package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/veloralabs/storefront_api/internal/models"
	"github.com/veloralabs/storefront_api/internal/service"
	"github.com/veloralabs/storefront_api/internal/utils"
)

// ReviewHandler handles review submission, listing and moderation.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// GetProductReviews returns the approved reviews of a product.
func (h *ReviewHandler) GetProductReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListApproved(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"reviews": reviews})
}

// CreateReview submits a review for a product.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	review, err := h.reviewService.Add(c.Request.Context(), c.GetString("user_id"), c.Param("slug"), req.Rating, req.Comment)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(201, review)
}

// GetModerationQueue returns pending reviews, oldest first.
func (h *ReviewHandler) GetModerationQueue(c *gin.Context) {
	reviews, err := h.reviewService.Queue(c.Request.Context())
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"reviews": reviews})
}

// ModerateReview sets a review to Approved or Flagged.
func (h *ReviewHandler) ModerateReview(c *gin.Context) {
	var req struct {
		Status models.ReviewStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	if err := h.reviewService.Moderate(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"status": req.Status})
}
