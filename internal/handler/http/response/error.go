package response

import (
	"errors"
	"net/http"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/announcement"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/auth"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/job"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/leave"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/notification"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/position"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/timelog"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid reset token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Reset token expired")
	case errors.Is(err, auth.ErrTokenUsed):
		Unauthorized(w, "Reset token already used")
	case errors.Is(err, auth.ErrWrongPassword):
		Unauthorized(w, "Current password is incorrect")
	case errors.Is(err, auth.ErrAccountDisabled):
		Forbidden(w, "Account is disabled")
	case errors.Is(err, auth.ErrTooManyResetRequests):
		TooManyRequests(w, "Too many reset requests, try again later")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAccountDisabled):
		Forbidden(w, "Account is disabled")
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrHRPrivilegeRequired):
		Forbidden(w, err.Error())

	// Position domain errors
	case errors.Is(err, position.ErrPositionNotFound):
		NotFound(w, "Position not found")
	case errors.Is(err, position.ErrTitleExists):
		Conflict(w, "Position title already exists")

	// Timelog domain errors
	case errors.Is(err, timelog.ErrTimelogNotFound):
		NotFound(w, "Timelog not found")
	case errors.Is(err, timelog.ErrAlreadyActive),
		errors.Is(err, timelog.ErrAlreadyOnBreak):
		Conflict(w, err.Error())
	case errors.Is(err, timelog.ErrMissingPhoto),
		errors.Is(err, timelog.ErrNotActive),
		errors.Is(err, timelog.ErrNeverClockedIn),
		errors.Is(err, timelog.ErrNotOnBreak),
		errors.Is(err, timelog.ErrNotClockedIn):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, timelog.ErrAdjustmentForbidden),
		errors.Is(err, timelog.ErrEditRequestForbidden):
		Forbidden(w, err.Error())
	case errors.Is(err, timelog.ErrEditRequestNotFound):
		NotFound(w, "Timelog edit request not found")
	case errors.Is(err, timelog.ErrEditRequestNotPending):
		Conflict(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrRequestNotPending):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrPastStartDate),
		errors.Is(err, leave.ErrInsufficientBalance),
		errors.Is(err, leave.ErrInvalidLeaveType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrApprovalForbidden):
		Forbidden(w, err.Error())

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Announcement domain errors
	case errors.Is(err, announcement.ErrAnnouncementNotFound):
		NotFound(w, "Announcement not found")

	// Job domain errors
	case errors.Is(err, job.ErrPositionNotFound):
		NotFound(w, "Job position not found")
	case errors.Is(err, job.ErrApplicationNotFound):
		NotFound(w, "Job application not found")
	case errors.Is(err, job.ErrPositionInactive):
		Conflict(w, err.Error())
	case errors.Is(err, job.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
