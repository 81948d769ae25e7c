package announcement

import (
	"context"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
)

// Service defines business logic for announcements
type Service interface {
	// Create publishes an announcement and broadcasts a notification to
	// every enabled user
	Create(ctx context.Context, actor user.User, req CreateRequest) (Response, error)

	Update(ctx context.Context, req UpdateRequest) (Response, error)

	// Deactivate hides an announcement without deleting it
	Deactivate(ctx context.Context, id string) error

	Delete(ctx context.Context, id string) error

	Get(ctx context.Context, id string) (Response, error)

	// ListActive returns announcements visible to every user
	ListActive(ctx context.Context) ([]Response, error)

	// ListAll includes deactivated announcements (admin/HR)
	ListAll(ctx context.Context) ([]Response, error)
}
