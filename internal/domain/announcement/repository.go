package announcement

import "context"

type Repository interface {
	Create(ctx context.Context, a Announcement) (Announcement, error)
	GetByID(ctx context.Context, id string) (Announcement, error)
	Update(ctx context.Context, a Announcement) error
	ListActive(ctx context.Context) ([]Announcement, error)
	ListAll(ctx context.Context) ([]Announcement, error)
	Delete(ctx context.Context, id string) error
}
