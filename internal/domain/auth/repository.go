package auth

import (
	"context"
	"time"
)

// PasswordResetTokenRepository defines data access for reset tokens.
type PasswordResetTokenRepository interface {
	Create(ctx context.Context, t PasswordResetToken) (PasswordResetToken, error)
	GetByToken(ctx context.Context, token string) (PasswordResetToken, error)
	MarkUsed(ctx context.Context, id string) error

	// InvalidateForUser marks every unused token of the user as used
	InvalidateForUser(ctx context.Context, userID string) error

	// DeleteExpired purges tokens that expired before the cutoff
	DeleteExpired(ctx context.Context, cutoff time.Time) error
}
