package position

import (
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/validator"
)

type CreatePositionRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

func (r *CreatePositionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PositionResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}
