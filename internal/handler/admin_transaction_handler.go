package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/veloralabs/storefront_api/internal/models"
	"github.com/veloralabs/storefront_api/internal/repository"
	"github.com/veloralabs/storefront_api/internal/utils"
)

// AdminTransactionHandler exposes payment transactions to the admin
// console. Reads are thin enough to sit straight on the repository.
type AdminTransactionHandler struct {
	trxRepo *repository.TransactionRepository
}

// NewAdminTransactionHandler constructs an AdminTransactionHandler.
func NewAdminTransactionHandler(trxRepo *repository.TransactionRepository) *AdminTransactionHandler {
	return &AdminTransactionHandler{trxRepo: trxRepo}
}

// ListTransactions returns transactions, optionally filtered by status.
func (h *AdminTransactionHandler) ListTransactions(c *gin.Context) {
	status := models.TransactionStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		utils.Error(c, 400, "unknown transaction status")
		return
	}

	transactions, err := h.trxRepo.ListAll(c.Request.Context(), status)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"transactions": transactions})
}

// GetOrderTransactions returns the transactions recorded for one order.
func (h *AdminTransactionHandler) GetOrderTransactions(c *gin.Context) {
	transactions, err := h.trxRepo.ListByOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"transactions": transactions})
}

// UpdateTransactionStatus sets a transaction's payment status.
func (h *AdminTransactionHandler) UpdateTransactionStatus(c *gin.Context) {
	var req struct {
		Status models.TransactionStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}
	if !req.Status.Valid() {
		utils.Error(c, 400, "unknown transaction status")
		return
	}

	if err := h.trxRepo.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Error(c, 404, utils.ErrNotFound.Error())
			return
		}
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"status": req.Status})
}
