package user

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/position"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
)

type service struct {
	repo         user.Repository
	positionRepo position.Repository
}

func NewUserService(repo user.Repository, positionRepo position.Repository) user.Service {
	return &service{
		repo:         repo,
		positionRepo: positionRepo,
	}
}

// CreateUser implements user.Service. Admins provision any role, HR only
// employee accounts.
func (s *service) CreateUser(ctx context.Context, actor user.User, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if !actor.IsAdmin() {
		if !actor.IsHR() {
			return user.UserResponse{}, user.ErrHRPrivilegeRequired
		}
		if user.Role(req.Role) != user.RoleEmployee {
			return user.UserResponse{}, user.ErrAdminPrivilegeRequired
		}
	}

	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return user.UserResponse{}, user.ErrUsernameExists
	}

	if req.PositionID != nil {
		if _, err := s.positionRepo.GetByID(ctx, *req.PositionID); err != nil {
			return user.UserResponse{}, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, user.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         user.Role(req.Role),
		PositionID:   req.PositionID,
		Enabled:      true,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
	})
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return toResponse(created), nil
}

// GetUser implements user.Service.
func (s *service) GetUser(ctx context.Context, id string) (user.UserResponse, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return toResponse(found), nil
}

// GetProfile implements user.Service.
func (s *service) GetProfile(ctx context.Context, actor user.User) (user.UserResponse, error) {
	found, err := s.repo.GetByID(ctx, actor.ID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return toResponse(found), nil
}

// UpdateProfile implements user.Service.
func (s *service) UpdateProfile(ctx context.Context, actor user.User, req user.UpdateProfileRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	targetID := req.ID
	if targetID == "" {
		targetID = actor.ID
	}
	if targetID != actor.ID && !actor.IsAdmin() {
		return user.UserResponse{}, user.ErrAdminPrivilegeRequired
	}

	found, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.FirstName != nil {
		found.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		found.LastName = *req.LastName
	}
	if req.Email != nil {
		found.Email = *req.Email
	}
	if req.Phone != nil {
		found.Phone = req.Phone
	}
	if req.Address != nil {
		found.Address = req.Address
	}

	if err := s.repo.Update(ctx, found); err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	updated, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return user.UserResponse{}, err
	}

	return toResponse(updated), nil
}

// ListUsers implements user.Service.
func (s *service) ListUsers(ctx context.Context, filter user.UserFilter) (user.ListUserResponse, error) {
	if err := filter.Validate(); err != nil {
		return user.ListUserResponse{}, err
	}

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return user.ListUserResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, len(users))
	for i, u := range users {
		responses[i] = toResponse(u)
	}

	return user.ListUserResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Users:      responses,
	}, nil
}

// SetEnabled implements user.Service.
func (s *service) SetEnabled(ctx context.Context, actor user.User, id string, enabled bool) error {
	if !actor.IsAdmin() {
		return user.ErrAdminPrivilegeRequired
	}

	return s.repo.SetEnabled(ctx, id, enabled)
}

func toResponse(u user.User) user.UserResponse {
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
