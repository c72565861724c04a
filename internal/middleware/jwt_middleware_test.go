package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloralabs/storefront_api/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.InitJWT("test-secret", time.Hour)
}

func newGuardedRouter() *gin.Engine {
	jwtMw := NewJWTMiddleware()

	router := gin.New()
	auth := router.Group("/", jwtMw.Handle())
	auth.GET("/me", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"user_id":  c.GetString("user_id"),
			"is_admin": c.GetBool("is_admin"),
		})
	})
	auth.GET("/admin", jwtMw.RequireAdmin(), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return router
}

func get(router *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTMiddlewareRejectsBadTokens(t *testing.T) {
	router := newGuardedRouter()

	assert.Equal(t, 401, get(router, "/me", "").Code)
	assert.Equal(t, 401, get(router, "/me", "Basic abc").Code)
	assert.Equal(t, 401, get(router, "/me", "Bearer not-a-token").Code)
}

func TestJWTMiddlewareSetsIdentity(t *testing.T) {
	router := newGuardedRouter()

	token, err := utils.GenerateJWT("user_1", "ada@example.com", false)
	require.NoError(t, err)

	w := get(router, "/me", "Bearer "+token)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "user_1")
}

func TestRequireAdmin(t *testing.T) {
	router := newGuardedRouter()

	userToken, err := utils.GenerateJWT("user_1", "ada@example.com", false)
	require.NoError(t, err)
	adminToken, err := utils.GenerateJWT("user_2", "root@example.com", true)
	require.NoError(t, err)

	assert.Equal(t, 403, get(router, "/admin", "Bearer "+userToken).Code)
	assert.Equal(t, 200, get(router, "/admin", "Bearer "+adminToken).Code)
}
