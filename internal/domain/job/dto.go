package job

import (
	"mime/multipart"
	"strings"

	"github.com/peopleops-io/hrms-backend-go/internal/pkg/validator"
)

type CreatePositionRequest struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Requirements   *string `json:"requirements,omitempty"`
	Location       *string `json:"location,omitempty"`
	EmploymentType *string `json:"employment_type,omitempty"`
}

func (r *CreatePositionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdatePositionRequest struct {
	ID             string  `json:"-"`
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`
	Requirements   *string `json:"requirements,omitempty"`
	Location       *string `json:"location,omitempty"`
	EmploymentType *string `json:"employment_type,omitempty"`
}

type PositionResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Requirements   *string `json:"requirements,omitempty"`
	Location       *string `json:"location,omitempty"`
	EmploymentType *string `json:"employment_type,omitempty"`
	Active         bool    `json:"active"`
	PostedDate     string  `json:"posted_date"`
}

type ApplyRequest struct {
	JobPositionID string                `json:"job_position_id"`
	FirstName     string                `json:"first_name"`
	LastName      string                `json:"last_name"`
	Email         string                `json:"email"`
	Phone         *string               `json:"phone,omitempty"`
	File          multipart.File        `json:"-"`
	FileHeader    *multipart.FileHeader `json:"-"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.JobPositionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "job_position_id",
			Message: "job_position_id is required",
		})
	}

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}

	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if r.FileHeader != nil {
		filename := r.FileHeader.Filename
		idx := strings.LastIndex(filename, ".")
		ext := ""
		if idx >= 0 {
			ext = strings.ToLower(filename[idx:])
		}
		if ext != ".pdf" && ext != ".doc" && ext != ".docx" {
			errs = append(errs, validator.ValidationError{
				Field:   "resume",
				Message: "invalid file type: only pdf, doc, docx allowed",
			})
		} else if r.FileHeader.Size > 5<<20 { // 5MB
			errs = append(errs, validator.ValidationError{
				Field:   "resume",
				Message: "resume size must not exceed 5MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewApplicationRequest struct {
	ID          string  `json:"-"`
	Status      string  `json:"status"`
	ReviewNotes *string `json:"review_notes,omitempty"`
}

func (r *ReviewApplicationRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{
		string(ApplicationNew), string(ApplicationReviewed), string(ApplicationInterview),
		string(ApplicationRejected), string(ApplicationHired),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: NEW, REVIEWED, INTERVIEW, REJECTED, HIRED",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApplicationResponse struct {
	ID             string  `json:"id"`
	JobPositionID  string  `json:"job_position_id"`
	PositionTitle  *string `json:"position_title,omitempty"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone,omitempty"`
	ResumeFileName *string `json:"resume_file_name,omitempty"`
	Status         string  `json:"status"`
	ReviewNotes    *string `json:"review_notes,omitempty"`
	AppliedDate    string  `json:"applied_date"`
}
