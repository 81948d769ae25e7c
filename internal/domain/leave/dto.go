package leave

import (
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	Reason    string `json:"reason"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	validTypes := make([]string, 0, 4)
	for _, t := range AllTypes() {
		validTypes = append(validTypes, string(t))
	}
	if !validator.IsInSlice(r.LeaveType, validTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: ANNUAL, SICK, PERSONAL, EMERGENCY",
		})
	}

	if _, valid := validator.IsValidDate(r.StartDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if _, valid := validator.IsValidDate(r.EndDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProcessRequest struct {
	ID       string  `json:"-"`
	Comments *string `json:"comments,omitempty"`
}

type BalanceResponse struct {
	LeaveType     string `json:"leave_type"`
	Year          int    `json:"year"`
	TotalDays     int    `json:"total_days"`
	UsedDays      int    `json:"used_days"`
	RemainingDays int    `json:"remaining_days"`
}

type RequestResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     *string `json:"employee_name,omitempty"`
	LeaveType        string  `json:"leave_type"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	DaysRequested    int     `json:"days_requested"`
	Reason           string  `json:"reason"`
	Status           string  `json:"status"`
	ApproverID       *string `json:"approver_id,omitempty"`
	ApproverComments *string `json:"approver_comments,omitempty"`
	RequestDate      string  `json:"request_date"`
}
