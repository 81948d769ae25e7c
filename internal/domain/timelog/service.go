package timelog

import (
	"context"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
)

// Service defines business logic for timelog operations. The acting user is
// passed explicitly; authorization decisions read its role and position.
type Service interface {
	// ClockIn opens today's session with a proof photo
	ClockIn(ctx context.Context, actor user.User, req ClockInRequest) (Response, error)

	// ClockOut closes the active session, auto-closing an open break
	ClockOut(ctx context.Context, actor user.User, req ClockOutRequest) (Response, error)

	// StartBreak marks the active session ON_BREAK
	StartBreak(ctx context.Context, actor user.User) (Response, error)

	// EndBreak resumes the active session and accumulates break minutes
	EndBreak(ctx context.Context, actor user.User) (Response, error)

	// GetStatus reports the employee's current punch state for today
	GetStatus(ctx context.Context, actor user.User) (StatusResponse, error)

	// GetMyTimelogs retrieves the acting employee's history
	GetMyTimelogs(ctx context.Context, actor user.User, filter Filter) (ListResponse, error)

	// Get retrieves one timelog; employees only see their own
	Get(ctx context.Context, actor user.User, id string) (Response, error)

	// Search retrieves timelogs across employees (admin/HR)
	Search(ctx context.Context, filter Filter) (ListResponse, error)

	// ExportCSV renders the same search as a CSV document
	ExportCSV(ctx context.Context, filter Filter) ([]byte, error)

	// Adjust writes the adjustment overlay; admins always, HR from senior
	// positions only
	Adjust(ctx context.Context, actor user.User, req AdjustRequest) (Response, error)

	// Delete removes a timelog (admin only)
	Delete(ctx context.Context, actor user.User, id string) error
}

// EditRequestService defines business logic for timelog edit requests.
type EditRequestService interface {
	// Create files a pending request and notifies the assigned HR
	Create(ctx context.Context, actor user.User, req CreateEditRequest) (EditRequestResponse, error)

	// Approve records an approval; admins any request, HR only those
	// assigned to them. One-shot.
	Approve(ctx context.Context, actor user.User, req ProcessEditRequest) (EditRequestResponse, error)

	// Reject records a rejection under the same authorization rule
	Reject(ctx context.Context, actor user.User, req ProcessEditRequest) (EditRequestResponse, error)

	// ListMine retrieves the acting employee's requests
	ListMine(ctx context.Context, actor user.User) ([]EditRequestResponse, error)

	// ListAssigned retrieves requests routed to the acting HR;
	// admins see everything
	ListAssigned(ctx context.Context, actor user.User) ([]EditRequestResponse, error)
}
