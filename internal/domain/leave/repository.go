package leave

import (
	"context"
	"time"
)

// BalanceRepository defines data access methods for the leave ledger.
type BalanceRepository interface {
	// Create inserts a balance row
	Create(ctx context.Context, b Balance) (Balance, error)

	// GetByEmployeeTypeYear retrieves one ledger row, nil when none exists
	GetByEmployeeTypeYear(ctx context.Context, employeeID string, leaveType Type, year int) (*Balance, error)

	// ListByEmployeeYear retrieves all ledger rows for one employee and year
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]Balance, error)

	// Update persists used/total day counters
	Update(ctx context.Context, b Balance) error
}

// RequestRepository defines data access methods for leave requests.
type RequestRepository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	Update(ctx context.Context, r Request) error
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	ListByStatus(ctx context.Context, status RequestStatus) ([]Request, error)
	ListAll(ctx context.Context) ([]Request, error)

	// HasOverlapping reports whether a PENDING or APPROVED request of the
	// employee intersects [start, end], both inclusive
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	// LockEmployee serializes concurrent submissions for one employee.
	// Takes pg_advisory_xact_lock, so it must run inside a transaction.
	LockEmployee(ctx context.Context, employeeID string) error
}
