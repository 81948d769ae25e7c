package leave

import (
	"context"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
)

// Service defines business logic for leave operations.
type Service interface {
	// GetBalances returns the employee's ledger for a year, lazily seeding
	// default allocations on first access
	GetBalances(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error)

	// Submit validates and files a leave request, then notifies HR
	Submit(ctx context.Context, actor user.User, req SubmitRequest) (RequestResponse, error)

	// Approve charges the balance and notifies the employee. One-shot.
	Approve(ctx context.Context, actor user.User, req ProcessRequest) (RequestResponse, error)

	// Reject records the decision and comments. One-shot.
	Reject(ctx context.Context, actor user.User, req ProcessRequest) (RequestResponse, error)

	// Get retrieves one request; employees only see their own
	Get(ctx context.Context, actor user.User, id string) (RequestResponse, error)

	// ListMine retrieves the acting employee's requests
	ListMine(ctx context.Context, actor user.User) ([]RequestResponse, error)

	// ListPending retrieves all pending requests (admin/HR)
	ListPending(ctx context.Context) ([]RequestResponse, error)

	// ListAll retrieves every request (admin/HR)
	ListAll(ctx context.Context) ([]RequestResponse, error)
}
