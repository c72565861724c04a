package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/veloralabs/storefront_api/internal/middleware"
	"github.com/veloralabs/storefront_api/internal/models"
	"github.com/veloralabs/storefront_api/internal/service"
	"github.com/veloralabs/storefront_api/internal/utils"
)

// AuthHandler handles signup and login endpoints.
type AuthHandler struct {
	authService *service.AuthService
	limiter     *middleware.LoginRateLimiter
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService, limiter *middleware.LoginRateLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	c.JSON(201, user)
}

type loginResponse struct {
	models.PublicUser
	Token string `json:"token,omitempty"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	ip := c.ClientIP()
	if h.limiter != nil && !h.limiter.Allow(ip) {
		utils.Error(c, 429, "Too many failed login attempts")
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if h.limiter != nil && utils.StatusFor(err) == 401 {
			h.limiter.RecordFailure(ip)
		}
		utils.Fail(c, err)
		return
	}

	c.JSON(200, loginResponse{PublicUser: *user, Token: token})
}
