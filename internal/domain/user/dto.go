package user

import (
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/validator"
)

type CreateUserRequest struct {
	Username   string  `json:"username"`
	Password   string  `json:"password"`
	Role       string  `json:"role"`
	PositionID *string `json:"position_id,omitempty"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}

	if !validator.IsStrongPassword(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters with upper case, lower case and a digit",
		})
	}

	if !validator.IsInSlice(r.Role, []string{string(RoleAdmin), string(RoleHR), string(RoleEmployee)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: ADMIN, HR, EMPLOYEE",
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateProfileRequest struct {
	ID        string  `json:"-"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name must not be blank",
		})
	}

	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name must not be blank",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UserResponse struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Role          string  `json:"role"`
	PositionID    *string `json:"position_id,omitempty"`
	PositionTitle *string `json:"position_title,omitempty"`
	Enabled       bool    `json:"enabled"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type UserFilter struct {
	Name *string `json:"name,omitempty"`
	Role *string `json:"role,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *UserFilter) Validate() error {
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

	if f.Role != nil && !validator.IsInSlice(*f.Role, []string{string(RoleAdmin), string(RoleHR), string(RoleEmployee)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: ADMIN, HR, EMPLOYEE",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListUserResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Users      []UserResponse `json:"users"`
}
