package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/veloralabs/storefront_api/internal/service"
	"github.com/veloralabs/storefront_api/internal/utils"
)

// UserManagementHandler handles admin user administration.
type UserManagementHandler struct {
	userService *service.UserService
}

// NewUserManagementHandler constructs a UserManagementHandler.
func NewUserManagementHandler(userService *service.UserService) *UserManagementHandler {
	return &UserManagementHandler{userService: userService}
}

// ListUsers returns all accounts for the admin console.
func (h *UserManagementHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"users": users})
}

// SetUserActive activates or deactivates an account.
func (h *UserManagementHandler) SetUserActive(c *gin.Context) {
	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		utils.Error(c, 400, "is_active is required")
		return
	}

	if err := h.userService.SetActive(c.Request.Context(), c.Param("id"), *req.IsActive); err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"is_active": *req.IsActive})
}
