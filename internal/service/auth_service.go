package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/veloralabs/storefront_api/internal/models"
	"github.com/veloralabs/storefront_api/internal/repository"
	"github.com/veloralabs/storefront_api/internal/utils"
)

// bcryptCost is the hashing cost factor for stored passwords.
const bcryptCost = 10

// dummyHash is compared against when the email is unknown so that a
// failed lookup costs the same as a failed password check.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("storefront-dummy-credential"), bcryptCost)

// UserStore is the credential persistence needed by AuthService.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService implements signup and login.
type AuthService struct {
	users UserStore
}

// NewAuthService constructs an AuthService.
func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Signup validates the input, hashes the password and persists a new
// credential record. The returned fields never include the password.
func (s *AuthService) Signup(ctx context.Context, email, password, fullName string) (*models.PublicUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" || fullName == "" {
		return nil, utils.Invalid("email, password and full_name are required")
	}
	if !strings.Contains(email, "@") {
		return nil, utils.Invalid("email is not valid")
	}
	if len(password) < 6 {
		return nil, utils.Invalid("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:           utils.NewUserID(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(fullName),
		IsAdmin:      false,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The uniqueness pre-check lives in the index: two concurrent
	// signups for the same email race past any read, so the insert
	// itself is the authority and a duplicate key means conflict.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.ErrEmailTaken
		}
		return nil, err
	}

	log.Info().Str("user_id", user.ID).Str("email", email).Msg("user signed up")

	pub := user.Public()
	return &pub, nil
}

// Login verifies credentials and issues a session token. Unknown email
// and wrong password produce the identical error so account existence
// is never leaked.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.PublicUser, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", utils.Invalid("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Burn a comparison anyway to keep effort constant.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, "", utils.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Debug().Str("email", email).Msg("password verification failed")
		return nil, "", utils.ErrInvalidCredentials
	}

	if !user.IsActive {
		log.Warn().Str("email", email).Msg("login attempt on inactive account")
		return nil, "", utils.ErrAccountInactive
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}

	log.Info().Str("user_id", user.ID).Msg("login successful")

	pub := user.Public()
	return &pub, token, nil
}

// EnsureAdmin creates the bootstrap admin account if no user with the
// given email exists yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	now := time.Now()
	err = s.users.Create(ctx, &models.User{
		ID:           utils.NewUserID(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Administrator",
		IsAdmin:      true,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil
	}
	return err
}
