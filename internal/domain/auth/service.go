package auth

import (
	"context"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
)

// Service defines business logic for authentication operations
type Service interface {
	// Login verifies credentials and issues an access token
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// ForgotPassword issues a reset token and emails the reset link.
	// Throttled per username; unknown usernames return silently.
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error

	// ResetPassword consumes a valid token and replaces the password
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	// ChangePassword replaces the acting user's password after verifying
	// the current one
	ChangePassword(ctx context.Context, actor user.User, req ChangePasswordRequest) error
}
