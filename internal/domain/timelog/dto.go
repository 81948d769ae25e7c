package timelog

import (
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/validator"
)

// ========================================
// PUNCH DTOs
// ========================================

// Punch proof photos are validated in the service so an empty photo surfaces
// as ErrMissingPhoto rather than a field validation error.
type ClockInRequest struct {
	Photo string `json:"photo"`
}

type ClockOutRequest struct {
	Photo string `json:"photo"`
}

// ========================================
// ADJUSTMENT DTOs
// ========================================

type AdjustRequest struct {
	ID                   string  `json:"-"`
	TimeIn               *string `json:"time_in,omitempty"`  // RFC3339
	TimeOut              *string `json:"time_out,omitempty"` // RFC3339
	BreakDurationMinutes *int    `json:"break_duration_minutes,omitempty"`
	Reason               string  `json:"reason"`
}

func (r *AdjustRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "adjustment reason is required",
		})
	}

	if r.TimeIn == nil && r.TimeOut == nil && r.BreakDurationMinutes == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "time_in",
			Message: "at least one of time_in, time_out, break_duration_minutes is required",
		})
	}

	if r.TimeIn != nil {
		if _, ok := validator.IsValidDateTime(*r.TimeIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "time_in",
				Message: "time_in must be an ISO8601 timestamp",
			})
		}
	}

	if r.TimeOut != nil {
		if _, ok := validator.IsValidDateTime(*r.TimeOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "time_out",
				Message: "time_out must be an ISO8601 timestamp",
			})
		}
	}

	if r.BreakDurationMinutes != nil && *r.BreakDurationMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_duration_minutes",
			Message: "break_duration_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// EDIT REQUEST DTOs
// ========================================

type CreateEditRequest struct {
	TimelogID             string  `json:"timelog_id"`
	AssignedHrID          string  `json:"assigned_hr_id"`
	Reason                string  `json:"reason"`
	RequestedTimeIn       *string `json:"requested_time_in,omitempty"`  // RFC3339
	RequestedTimeOut      *string `json:"requested_time_out,omitempty"` // RFC3339
	RequestedBreakMinutes *int    `json:"requested_break_minutes,omitempty"`
}

func (r *CreateEditRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TimelogID) {
		errs = append(errs, validator.ValidationError{
			Field:   "timelog_id",
			Message: "timelog_id is required",
		})
	}

	if validator.IsEmpty(r.AssignedHrID) {
		errs = append(errs, validator.ValidationError{
			Field:   "assigned_hr_id",
			Message: "assigned_hr_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if r.RequestedTimeIn != nil {
		if _, ok := validator.IsValidDateTime(*r.RequestedTimeIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_time_in",
				Message: "requested_time_in must be an ISO8601 timestamp",
			})
		}
	}

	if r.RequestedTimeOut != nil {
		if _, ok := validator.IsValidDateTime(*r.RequestedTimeOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_time_out",
				Message: "requested_time_out must be an ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProcessEditRequest struct {
	ID       string  `json:"-"`
	Response *string `json:"response,omitempty"`
}

// ========================================
// FILTER / RESPONSE DTOs
// ========================================

type Filter struct {
	// Case-insensitive substring over first name, last name or username
	Name      *string `json:"name,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD, inclusive
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD, inclusive

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // log_date, employee_name, time_in, time_out
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"log_date", "employee_name", "time_in", "time_out"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: log_date, employee_name, time_in, time_out",
			})
		}
	} else {
		f.SortBy = "log_date"
	}

	if f.SortOrder != "" {
		if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc"
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Response struct {
	ID                   string  `json:"id"`
	EmployeeID           string  `json:"employee_id"`
	EmployeeName         *string `json:"employee_name,omitempty"`
	LogDate              string  `json:"log_date"`
	TimeIn               *string `json:"time_in,omitempty"`
	TimeOut              *string `json:"time_out,omitempty"`
	BreakStart           *string `json:"break_start,omitempty"`
	BreakEnd             *string `json:"break_end,omitempty"`
	Status               string  `json:"status"`
	BreakDurationMinutes *int    `json:"break_duration_minutes,omitempty"`
	TotalWorkedHours     float64 `json:"total_worked_hours"`
	AdjustedTimeIn       *string `json:"adjusted_time_in,omitempty"`
	AdjustedTimeOut      *string `json:"adjusted_time_out,omitempty"`
	AdjustedBreakMinutes *int    `json:"adjusted_break_minutes,omitempty"`
	AdjustmentReason     *string `json:"adjustment_reason,omitempty"`
	AdjustedByID         *string `json:"adjusted_by_id,omitempty"`
	AdjustmentDate       *string `json:"adjustment_date,omitempty"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

type StatusResponse struct {
	Status       string    `json:"status"`
	TodayTimelog *Response `json:"today_timelog,omitempty"`
	CanClockIn   bool      `json:"can_clock_in"`
	CanClockOut  bool      `json:"can_clock_out"`
}

type ListResponse struct {
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
	Timelogs   []Response `json:"timelogs"`
}

type EditRequestResponse struct {
	ID                    string  `json:"id"`
	TimelogID             string  `json:"timelog_id"`
	EmployeeID            string  `json:"employee_id"`
	EmployeeName          *string `json:"employee_name,omitempty"`
	AssignedHrID          string  `json:"assigned_hr_id"`
	Reason                string  `json:"reason"`
	RequestedTimeIn       *string `json:"requested_time_in,omitempty"`
	RequestedTimeOut      *string `json:"requested_time_out,omitempty"`
	RequestedBreakMinutes *int    `json:"requested_break_minutes,omitempty"`
	Status                string  `json:"status"`
	HrResponse            *string `json:"hr_response,omitempty"`
	ProcessedByID         *string `json:"processed_by_id,omitempty"`
	ProcessedDate         *string `json:"processed_date,omitempty"`
	RequestDate           string  `json:"request_date"`
}
