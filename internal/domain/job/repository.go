package job

import "context"

// PositionRepository defines data access methods for job postings.
type PositionRepository interface {
	Create(ctx context.Context, p Position) (Position, error)
	GetByID(ctx context.Context, id string) (Position, error)
	Update(ctx context.Context, p Position) error
	ListActive(ctx context.Context) ([]Position, error)
	ListAll(ctx context.Context) ([]Position, error)
}

// ApplicationRepository defines data access methods for candidate applications.
type ApplicationRepository interface {
	Create(ctx context.Context, a Application) (Application, error)

	// GetByID retrieves an application without the resume blob
	GetByID(ctx context.Context, id string) (Application, error)

	// GetResume retrieves the stored resume bytes and filename
	GetResume(ctx context.Context, id string) ([]byte, string, error)

	Update(ctx context.Context, a Application) error
	ListByPosition(ctx context.Context, positionID string) ([]Application, error)
	ListAll(ctx context.Context) ([]Application, error)
}
