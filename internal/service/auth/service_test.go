package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/auth"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]user.User
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByRole(_ context.Context, role user.Role) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetByPositionTitles(_ context.Context, _ []string) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) ListEnabled(_ context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepo) List(_ context.Context, _ user.UserFilter) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) SetEnabled(_ context.Context, id string, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Enabled = enabled
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) passwordHash(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id].PasswordHash
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	seq    int
	tokens map[string]auth.PasswordResetToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]auth.PasswordResetToken)}
}

func (f *fakeTokenRepo) Create(_ context.Context, t auth.PasswordResetToken) (auth.PasswordResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t.ID = fmt.Sprintf("tok-%d", f.seq)
	t.CreatedAt = time.Now()
	f.tokens[t.ID] = t
	return t, nil
}

func (f *fakeTokenRepo) GetByToken(_ context.Context, token string) (auth.PasswordResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.Token == token {
			return t, nil
		}
	}
	return auth.PasswordResetToken{}, auth.ErrInvalidToken
}

func (f *fakeTokenRepo) MarkUsed(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[id]
	if !ok {
		return auth.ErrInvalidToken
	}
	t.Used = true
	f.tokens[id] = t
	return nil
}

func (f *fakeTokenRepo) InvalidateForUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, t := range f.tokens {
		if t.UserID == userID && !t.Used {
			t.Used = true
			f.tokens[id] = t
		}
	}
	return nil
}

func (f *fakeTokenRepo) DeleteExpired(_ context.Context, cutoff time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, t := range f.tokens {
		if t.ExpiryDate.Before(cutoff) {
			delete(f.tokens, id)
		}
	}
	return nil
}

func (f *fakeTokenRepo) activeFor(userID string) []auth.PasswordResetToken {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []auth.PasswordResetToken
	for _, t := range f.tokens {
		if t.UserID == userID && !t.Used {
			out = append(out, t)
		}
	}
	return out
}

type fakeEmail struct {
	mu   sync.Mutex
	sent []struct{ To, Link string }
}

func (f *fakeEmail) SendPasswordReset(to, resetLink, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, struct{ To, Link string }{to, resetLink})
	return nil
}

func (f *fakeEmail) deliveries() []struct{ To, Link string } {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]struct{ To, Link string }(nil), f.sent...)
}

type fakeLimiter struct{ allow bool }

func (f fakeLimiter) Allow(_ context.Context, _ string) (bool, error) { return f.allow, nil }

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func account(t *testing.T, id, username, password string) user.User {
	t.Helper()
	return user.User{
		ID:           id,
		Username:     username,
		PasswordHash: hashPassword(t, password),
		Role:         user.RoleEmployee,
		Enabled:      true,
		FirstName:    "Test",
		LastName:     "User",
		Email:        username + "@example.com",
	}
}

func newTestService(t *testing.T, users ...user.User) (auth.Service, *fakeUserRepo, *fakeTokenRepo, *fakeEmail) {
	t.Helper()
	userRepo := newFakeUserRepo(users...)
	tokenRepo := newFakeTokenRepo()
	mailer := &fakeEmail{}
	svc := NewAuthService(userRepo, tokenRepo, jwt.NewJWTService("test-secret", "15m"), mailer, fakeLimiter{allow: true}, "https://hrms.example.com")
	return svc, userRepo, tokenRepo, mailer
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	acct := account(t, "u-1", "jdoe", "Sup3rSecret")

	t.Run("issues a bearer token on valid credentials", func(t *testing.T) {
		svc, _, _, _ := newTestService(t, acct)

		resp, err := svc.Login(ctx, auth.LoginRequest{Username: "jdoe", Password: "Sup3rSecret"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Greater(t, resp.ExpiresAt, time.Now().Unix())
		assert.Equal(t, acct.ID, resp.User.ID)
		assert.Equal(t, "jdoe", resp.User.Username)
	})

	t.Run("wrong password and unknown user fail identically", func(t *testing.T) {
		svc, _, _, _ := newTestService(t, acct)

		_, err := svc.Login(ctx, auth.LoginRequest{Username: "jdoe", Password: "wrong"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

		_, err = svc.Login(ctx, auth.LoginRequest{Username: "nobody", Password: "whatever"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("disabled accounts cannot log in", func(t *testing.T) {
		disabled := acct
		disabled.Enabled = false
		svc, _, _, _ := newTestService(t, disabled)

		_, err := svc.Login(ctx, auth.LoginRequest{Username: "jdoe", Password: "Sup3rSecret"})
		assert.ErrorIs(t, err, auth.ErrAccountDisabled)
	})
}

func TestForgotPassword(t *testing.T) {
	ctx := context.Background()
	acct := account(t, "u-1", "jdoe", "Sup3rSecret")

	t.Run("throttled requests are rejected", func(t *testing.T) {
		userRepo := newFakeUserRepo(acct)
		mailer := &fakeEmail{}
		svc := NewAuthService(userRepo, newFakeTokenRepo(), jwt.NewJWTService("test-secret", "15m"), mailer, fakeLimiter{allow: false}, "https://hrms.example.com")

		err := svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Username: "jdoe"})
		assert.ErrorIs(t, err, auth.ErrTooManyResetRequests)
		assert.Empty(t, mailer.deliveries())
	})

	t.Run("unknown usernames succeed without sending anything", func(t *testing.T) {
		svc, _, tokenRepo, mailer := newTestService(t, acct)

		err := svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Username: "nobody"})
		assert.NoError(t, err)
		assert.Empty(t, mailer.deliveries())
		assert.Empty(t, tokenRepo.activeFor(acct.ID))
	})

	t.Run("issues a single-use token and mails the reset link", func(t *testing.T) {
		svc, _, tokenRepo, mailer := newTestService(t, acct)

		require.NoError(t, svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Username: "jdoe"}))
		// A second request invalidates the first token
		require.NoError(t, svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Username: "jdoe"}))

		active := tokenRepo.activeFor(acct.ID)
		require.Len(t, active, 1)

		deliveries := mailer.deliveries()
		require.Len(t, deliveries, 2)
		assert.Equal(t, "jdoe@example.com", deliveries[1].To)
		assert.True(t, strings.HasPrefix(deliveries[1].Link, "https://hrms.example.com/reset-password?token="))
		assert.Contains(t, deliveries[1].Link, active[0].Token)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	acct := account(t, "u-1", "jdoe", "Sup3rSecret")

	issueToken := func(tokenRepo *fakeTokenRepo, token string, expiry time.Time, used bool) {
		_, err := tokenRepo.Create(ctx, auth.PasswordResetToken{
			UserID:     acct.ID,
			Token:      token,
			ExpiryDate: expiry,
			Used:       used,
		})
		require.NoError(t, err)
	}

	t.Run("valid token sets the new password and burns itself", func(t *testing.T) {
		svc, userRepo, tokenRepo, _ := newTestService(t, acct)
		issueToken(tokenRepo, "good-token", time.Now().Add(10*time.Minute), false)

		err := svc.ResetPassword(ctx, auth.ResetPasswordRequest{Token: "good-token", NewPassword: "N3wPassword"})
		require.NoError(t, err)

		hash := userRepo.passwordHash(acct.ID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("N3wPassword")))

		err = svc.ResetPassword(ctx, auth.ResetPasswordRequest{Token: "good-token", NewPassword: "An0therPass"})
		assert.ErrorIs(t, err, auth.ErrTokenUsed)
	})

	t.Run("expired tokens are rejected", func(t *testing.T) {
		svc, _, tokenRepo, _ := newTestService(t, acct)
		issueToken(tokenRepo, "stale-token", time.Now().Add(-time.Minute), false)

		err := svc.ResetPassword(ctx, auth.ResetPasswordRequest{Token: "stale-token", NewPassword: "N3wPassword"})
		assert.ErrorIs(t, err, auth.ErrTokenExpired)
	})

	t.Run("unknown tokens are rejected", func(t *testing.T) {
		svc, _, _, _ := newTestService(t, acct)

		err := svc.ResetPassword(ctx, auth.ResetPasswordRequest{Token: "missing", NewPassword: "N3wPassword"})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	acct := account(t, "u-1", "jdoe", "Sup3rSecret")

	t.Run("requires the current password", func(t *testing.T) {
		svc, _, _, _ := newTestService(t, acct)

		err := svc.ChangePassword(ctx, acct, auth.ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "N3wPassword",
		})
		assert.ErrorIs(t, err, auth.ErrWrongPassword)
	})

	t.Run("updates the stored hash", func(t *testing.T) {
		svc, userRepo, _, _ := newTestService(t, acct)

		err := svc.ChangePassword(ctx, acct, auth.ChangePasswordRequest{
			CurrentPassword: "Sup3rSecret",
			NewPassword:     "N3wPassword",
		})
		require.NoError(t, err)

		hash := userRepo.passwordHash(acct.ID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("N3wPassword")))
	})
}
