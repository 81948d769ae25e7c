package auth

import "time"

// PasswordResetToken is single-use and short-lived. Issuing a new token
// invalidates all prior unused ones for the same user.
type PasswordResetToken struct {
	ID         string
	UserID     string
	Token      string
	ExpiryDate time.Time
	Used       bool
	CreatedAt  time.Time
}

// IsExpired reports whether the token expired at the given instant.
func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiryDate)
}
