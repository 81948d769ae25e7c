package user

import (
	"context"
)

// Service defines business logic for directory operations
type Service interface {
	// CreateUser provisions a new account; admins may create any role,
	// HR only employees
	CreateUser(ctx context.Context, actor User, req CreateUserRequest) (UserResponse, error)

	// GetUser retrieves a single user by ID
	GetUser(ctx context.Context, id string) (UserResponse, error)

	// GetProfile retrieves the acting user's own profile
	GetProfile(ctx context.Context, actor User) (UserResponse, error)

	// UpdateProfile updates profile fields; users edit themselves,
	// admins anyone
	UpdateProfile(ctx context.Context, actor User, req UpdateProfileRequest) (UserResponse, error)

	// ListUsers retrieves users with filters (admin/HR)
	ListUsers(ctx context.Context, filter UserFilter) (ListUserResponse, error)

	// SetEnabled disables or re-enables an account (admin only)
	SetEnabled(ctx context.Context, actor User, id string, enabled bool) error
}
