package position

import "context"

// Service defines business logic for position management. Role checks happen
// at the routing layer; every mutation here is admin scope.
type Service interface {
	Create(ctx context.Context, req CreatePositionRequest) (PositionResponse, error)
	Get(ctx context.Context, id string) (PositionResponse, error)
	List(ctx context.Context) ([]PositionResponse, error)
	Update(ctx context.Context, id string, req CreatePositionRequest) (PositionResponse, error)
	Delete(ctx context.Context, id string) error
}
