package job

import (
	"context"
)

// Service defines business logic for recruiting operations
type Service interface {
	// Postings (admin/HR except listing open ones)
	CreatePosition(ctx context.Context, req CreatePositionRequest) (PositionResponse, error)
	UpdatePosition(ctx context.Context, req UpdatePositionRequest) (PositionResponse, error)
	DeactivatePosition(ctx context.Context, id string) error
	ListOpenPositions(ctx context.Context) ([]PositionResponse, error)
	ListAllPositions(ctx context.Context) ([]PositionResponse, error)

	// Applications; Apply is public and notifies HR users
	Apply(ctx context.Context, req ApplyRequest) (ApplicationResponse, error)
	ReviewApplication(ctx context.Context, actorID string, req ReviewApplicationRequest) (ApplicationResponse, error)
	GetApplication(ctx context.Context, id string) (ApplicationResponse, error)
	GetResume(ctx context.Context, id string) ([]byte, string, error)
	ListApplications(ctx context.Context, positionID *string) ([]ApplicationResponse, error)
}
