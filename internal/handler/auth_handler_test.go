package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloralabs/storefront_api/internal/middleware"
	"github.com/veloralabs/storefront_api/internal/models"
	"github.com/veloralabs/storefront_api/internal/repository"
	"github.com/veloralabs/storefront_api/internal/service"
	"github.com/veloralabs/storefront_api/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.InitJWT("test-secret", time.Hour)
}

// memUserStore is an in-memory service.UserStore for handler tests.
type memUserStore struct {
	users map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*models.User)}
}

func (m *memUserStore) Create(ctx context.Context, user *models.User) error {
	if _, ok := m.users[user.Email]; ok {
		return repository.ErrDuplicate
	}
	cp := *user
	m.users[user.Email] = &cp
	return nil
}

func (m *memUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func newAuthRouter(limiter *middleware.LoginRateLimiter) (*gin.Engine, *memUserStore) {
	store := newMemUserStore()
	h := NewAuthHandler(service.NewAuthService(store), limiter)

	router := gin.New()
	router.POST("/api/auth/signup", h.Signup)
	router.POST("/api/auth/login", h.Login)
	return router, store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignupEndpoint(t *testing.T) {
	router, _ := newAuthRouter(nil)

	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", gin.H{
		"email": "ada@example.com", "password": "secret1", "full_name": "Ada",
	})
	require.Equal(t, 201, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ada@example.com", body["email"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")

	// Same email again conflicts.
	w = doJSON(t, router, http.MethodPost, "/api/auth/signup", gin.H{
		"email": "ada@example.com", "password": "other-pass", "full_name": "Ada",
	})
	require.Equal(t, 409, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Email already registered", body["error"])
}

func TestSignupEndpointValidation(t *testing.T) {
	router, _ := newAuthRouter(nil)

	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", gin.H{
		"email": "ada@example.com", "password": "12345", "full_name": "Ada",
	})
	assert.Equal(t, 400, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, 400, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := newAuthRouter(nil)

	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", gin.H{
		"email": "ada@example.com", "password": "secret1", "full_name": "Ada",
	})
	require.Equal(t, 201, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email": "ada@example.com", "password": "secret1",
	})
	require.Equal(t, 200, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	assert.NotContains(t, body, "password")

	claims, err := utils.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestLoginEndpointFailures(t *testing.T) {
	router, store := newAuthRouter(nil)

	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", gin.H{
		"email": "ada@example.com", "password": "secret1", "full_name": "Ada",
	})
	require.Equal(t, 201, w.Code)

	unknown := doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email": "nobody@example.com", "password": "whatever",
	})
	wrong := doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email": "ada@example.com", "password": "bad-pass",
	})

	assert.Equal(t, 401, unknown.Code)
	assert.Equal(t, 401, wrong.Code)
	// The body is identical so callers cannot probe for accounts.
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())

	store.users["ada@example.com"].IsActive = false
	inactive := doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email": "ada@example.com", "password": "secret1",
	})
	assert.Equal(t, 403, inactive.Code)
}

func TestLoginRateLimiting(t *testing.T) {
	router, _ := newAuthRouter(middleware.NewLoginRateLimiter())

	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", gin.H{
		"email": "ada@example.com", "password": "secret1", "full_name": "Ada",
	})
	require.Equal(t, 201, w.Code)

	for i := 0; i < 5; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
			"email": "ada@example.com", "password": "bad-pass",
		})
		require.Equal(t, 401, w.Code)
	}

	// Sixth attempt in the window is cut off, even with the right password.
	w = doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email": "ada@example.com", "password": "secret1",
	})
	assert.Equal(t, 429, w.Code)
}
