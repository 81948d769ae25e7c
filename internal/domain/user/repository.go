package user

import (
	"context"
)

// Repository defines data access methods for user accounts.
type Repository interface {
	// Create creates a new user account with profile details
	Create(ctx context.Context, u User) (User, error)

	// GetByID retrieves a user by ID, position title joined in
	GetByID(ctx context.Context, id string) (User, error)

	// GetByUsername retrieves a user by username for authentication
	GetByUsername(ctx context.Context, username string) (User, error)

	// GetByRole retrieves all enabled users with the given role
	GetByRole(ctx context.Context, role Role) ([]User, error)

	// GetByPositionTitles retrieves all enabled users whose position title
	// matches any of the given titles exactly
	GetByPositionTitles(ctx context.Context, titles []string) ([]User, error)

	// ListEnabled retrieves every enabled user
	ListEnabled(ctx context.Context) ([]User, error)

	// List retrieves users with filters and pagination
	List(ctx context.Context, filter UserFilter) ([]User, int64, error)

	// Update updates profile fields of an existing user
	Update(ctx context.Context, u User) error

	// UpdatePassword replaces the stored password hash
	UpdatePassword(ctx context.Context, id string, passwordHash string) error

	// SetEnabled flips the enabled flag
	SetEnabled(ctx context.Context, id string, enabled bool) error
}
