package announcement

import (
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Priority string `json:"priority"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if validator.IsEmpty(r.Content) {
		errs = append(errs, validator.ValidationError{
			Field:   "content",
			Message: "content is required",
		})
	}

	if r.Priority == "" {
		r.Priority = string(PriorityNormal)
	}
	if !validator.IsInSlice(r.Priority, []string{
		string(PriorityLow), string(PriorityNormal), string(PriorityHigh), string(PriorityUrgent),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of: LOW, NORMAL, HIGH, URGENT",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateRequest struct {
	ID       string  `json:"-"`
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Priority *string `json:"priority,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not be blank",
		})
	}

	if r.Priority != nil && !validator.IsInSlice(*r.Priority, []string{
		string(PriorityLow), string(PriorityNormal), string(PriorityHigh), string(PriorityUrgent),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of: LOW, NORMAL, HIGH, URGENT",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Response struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	Priority      string  `json:"priority"`
	Active        bool    `json:"active"`
	CreatedByID   string  `json:"created_by_id"`
	CreatedByName *string `json:"created_by_name,omitempty"`
	CreatedAt     string  `json:"created_at"`
}
