package timelog

import (
	"context"
	"time"
)

// Repository defines data access methods for timelog records.
type Repository interface {
	// Create creates a new timelog row
	Create(ctx context.Context, t Timelog) (Timelog, error)

	// GetByID retrieves a timelog by ID with employee name joined in
	GetByID(ctx context.Context, id string) (Timelog, error)

	// GetByEmployeeAndDate retrieves the timelog for one employee on one day,
	// nil when none exists
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Timelog, error)

	// GetActiveByEmployee retrieves the employee's open session
	// (status CLOCKED_IN or ON_BREAK) across all days, nil when none
	GetActiveByEmployee(ctx context.Context, employeeID string) (*Timelog, error)

	// Update persists punch, status and adjustment fields
	Update(ctx context.Context, t Timelog) error

	// ListByEmployee retrieves an employee's timelogs in a date range
	ListByEmployee(ctx context.Context, employeeID string, filter Filter) ([]Timelog, int64, error)

	// Search retrieves timelogs across employees with name substring and
	// inclusive date filters
	Search(ctx context.Context, filter Filter) ([]Timelog, int64, error)

	// Delete removes a timelog row
	Delete(ctx context.Context, id string) error

	// LockEmployee serializes concurrent punch operations for one employee.
	// Takes pg_advisory_xact_lock, so it must run inside a transaction.
	LockEmployee(ctx context.Context, employeeID string) error
}

// EditRequestRepository defines data access methods for timelog edit requests.
type EditRequestRepository interface {
	Create(ctx context.Context, req EditRequest) (EditRequest, error)
	GetByID(ctx context.Context, id string) (EditRequest, error)
	Update(ctx context.Context, req EditRequest) error
	ListByEmployee(ctx context.Context, employeeID string) ([]EditRequest, error)
	ListByAssignedHr(ctx context.Context, hrID string) ([]EditRequest, error)
	ListAll(ctx context.Context) ([]EditRequest, error)
}
