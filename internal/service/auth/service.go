package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/auth"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/email"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/jwt"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/ratelimit"
)

const resetTokenTTL = 10 * time.Minute

type service struct {
	userRepo     user.Repository
	tokenRepo    auth.PasswordResetTokenRepository
	jwtService   jwt.Service
	emailService email.EmailService
	resetLimiter ratelimit.Limiter
	frontendURL  string
}

func NewAuthService(
	userRepo user.Repository,
	tokenRepo auth.PasswordResetTokenRepository,
	jwtService jwt.Service,
	emailService email.EmailService,
	resetLimiter ratelimit.Limiter,
	frontendURL string,
) auth.Service {
	return &service{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		jwtService:   jwtService,
		emailService: emailService,
		resetLimiter: resetLimiter,
		frontendURL:  frontendURL,
	}
}

// Login implements auth.Service.
func (s *service) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	found, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if !found.Enabled {
		return auth.LoginResponse{}, auth.ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(found.ID, found.Username, found.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        toUserResponse(found),
	}, nil
}

// ForgotPassword implements auth.Service. Unknown usernames return silently
// so the endpoint does not leak which accounts exist.
func (s *service) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	allowed, err := s.resetLimiter.Allow(ctx, req.Username)
	if err != nil {
		return fmt.Errorf("failed to check reset throttle: %w", err)
	}
	if !allowed {
		return auth.ErrTooManyResetRequests
	}

	found, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil
	}

	// Opportunistic cleanup of long-expired tokens
	if err := s.tokenRepo.DeleteExpired(ctx, time.Now().Add(-24*time.Hour)); err != nil {
		slog.Warn("failed to purge expired reset tokens", "error", err)
	}

	if err := s.tokenRepo.InvalidateForUser(ctx, found.ID); err != nil {
		return fmt.Errorf("failed to invalidate prior reset tokens: %w", err)
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiry := time.Now().Add(resetTokenTTL)
	_, err = s.tokenRepo.Create(ctx, auth.PasswordResetToken{
		UserID:     found.ID,
		Token:      token,
		ExpiryDate: expiry,
		Used:       false,
	})
	if err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	if err := s.emailService.SendPasswordReset(found.Email, resetLink, expiry.Format(time.RFC1123)); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

// ResetPassword implements auth.Service.
func (s *service) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	found, err := s.tokenRepo.GetByToken(ctx, req.Token)
	if err != nil {
		return err
	}
	if found.Used {
		return auth.ErrTokenUsed
	}
	if found.IsExpired(time.Now()) {
		return auth.ErrTokenExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, found.UserID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.tokenRepo.MarkUsed(ctx, found.ID); err != nil {
		return fmt.Errorf("failed to mark token used: %w", err)
	}

	return nil
}

// ChangePassword implements auth.Service.
func (s *service) ChangePassword(ctx context.Context, actor user.User, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(actor.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, actor.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// generateResetToken returns a 32-byte url-safe random token.
func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func toUserResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		Role:          string(u.Role),
		PositionID:    u.PositionID,
		PositionTitle: u.PositionTitle,
		Enabled:       u.Enabled,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Phone:         u.Phone,
		Address:       u.Address,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
	}
}
