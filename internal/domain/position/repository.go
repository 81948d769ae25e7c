package position

import "context"

type Repository interface {
	Create(ctx context.Context, p Position) (Position, error)
	GetByID(ctx context.Context, id string) (Position, error)
	GetByTitle(ctx context.Context, title string) (Position, error)
	List(ctx context.Context) ([]Position, error)
	Update(ctx context.Context, p Position) error
	Delete(ctx context.Context, id string) error
}
