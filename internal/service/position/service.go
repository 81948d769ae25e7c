package position

import (
	"context"
	"errors"
	"fmt"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/position"
)

type service struct {
	repo position.Repository
}

func NewPositionService(repo position.Repository) position.Service {
	return &service{repo: repo}
}

// Create implements position.Service.
func (s *service) Create(ctx context.Context, req position.CreatePositionRequest) (position.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return position.PositionResponse{}, err
	}

	if _, err := s.repo.GetByTitle(ctx, req.Title); err == nil {
		return position.PositionResponse{}, position.ErrTitleExists
	} else if !errors.Is(err, position.ErrPositionNotFound) {
		return position.PositionResponse{}, err
	}

	created, err := s.repo.Create(ctx, position.Position{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return position.PositionResponse{}, fmt.Errorf("failed to create position: %w", err)
	}

	return toResponse(created), nil
}

// Get implements position.Service.
func (s *service) Get(ctx context.Context, id string) (position.PositionResponse, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return position.PositionResponse{}, err
	}
	return toResponse(found), nil
}

// List implements position.Service.
func (s *service) List(ctx context.Context) ([]position.PositionResponse, error) {
	positions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	responses := make([]position.PositionResponse, len(positions))
	for i, p := range positions {
		responses[i] = toResponse(p)
	}
	return responses, nil
}

// Update implements position.Service.
func (s *service) Update(ctx context.Context, id string, req position.CreatePositionRequest) (position.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return position.PositionResponse{}, err
	}

	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return position.PositionResponse{}, err
	}

	if existing, err := s.repo.GetByTitle(ctx, req.Title); err == nil && existing.ID != id {
		return position.PositionResponse{}, position.ErrTitleExists
	}

	found.Title = req.Title
	found.Description = req.Description
	if err := s.repo.Update(ctx, found); err != nil {
		return position.PositionResponse{}, fmt.Errorf("failed to update position: %w", err)
	}

	return toResponse(found), nil
}

// Delete implements position.Service.
func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func toResponse(p position.Position) position.PositionResponse {
	return position.PositionResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
	}
}
