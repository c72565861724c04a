package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/veloralabs/storefront_api/internal/service"
	"github.com/veloralabs/storefront_api/internal/utils"
)

// ProfileHandler handles the authenticated user's own profile.
type ProfileHandler struct {
	userService *service.UserService
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(userService *service.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

// GetProfile returns the session user's public fields.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.Profile(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, user)
}

// UpdateProfile edits the session user's profile fields.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		FullName  string `json:"full_name"`
		Phone     string `json:"phone"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), c.GetString("user_id"), req.FullName, req.Phone, req.AvatarURL)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(200, user)
}
