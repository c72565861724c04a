package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/veloralabs/storefront_api/internal/models"
	"github.com/veloralabs/storefront_api/internal/service"
	"github.com/veloralabs/storefront_api/internal/utils"
)

// OrderHandler handles checkout, the user's order history and admin
// order management.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Checkout creates an order for the session user.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var in service.CheckoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), c.GetString("user_id"), &in)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(201, order)
}

// GetMyOrders returns the session user's orders.
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	orders, err := h.orderService.ListUserOrders(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"orders": orders})
}

// GetMyOrder returns one of the session user's orders.
func (h *OrderHandler) GetMyOrder(c *gin.Context) {
	order, err := h.orderService.GetUserOrder(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, order)
}

// ListOrders returns all orders for the admin console, optionally
// filtered by status.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context(), models.OrderStatus(c.Query("status")))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"orders": orders})
}

// UpdateOrderStatus moves an order along its lifecycle.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, order)
}
