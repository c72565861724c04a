package service

import (
	"context"
	"errors"
	"strings"

	"github.com/veloralabs/storefront_api/internal/models"
	"github.com/veloralabs/storefront_api/internal/repository"
	"github.com/veloralabs/storefront_api/internal/utils"
)

// ProfileStore is the user persistence needed by UserService.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id, fullName, phone, avatarURL string) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context) ([]models.User, error)
}

// UserService provides profile access and admin user management.
type UserService struct {
	users ProfileStore
}

// NewUserService constructs a UserService.
func NewUserService(users ProfileStore) *UserService {
	return &UserService{users: users}
}

// Profile returns the public fields of a user.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.PublicUser, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

// UpdateProfile edits the mutable profile fields and returns the
// updated public view. Email, admin and active flags are not editable
// through this path.
func (s *UserService) UpdateProfile(ctx context.Context, userID, fullName, phone, avatarURL string) (*models.PublicUser, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, utils.Invalid("full_name is required")
	}
	if err := s.users.UpdateProfile(ctx, userID, fullName, phone, avatarURL); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return s.Profile(ctx, userID)
}

// ListUsers returns all users for the admin console. The password hash
// never serializes, but the projection keeps the payload to the public
// fields plus the active flag the console needs.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// SetActive toggles an account. Deactivated accounts fail login with
// the inactive error until reactivated.
func (s *UserService) SetActive(ctx context.Context, userID string, active bool) error {
	err := s.users.SetActive(ctx, userID, active)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrNotFound
	}
	return err
}
