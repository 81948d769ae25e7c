package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUsernameExists         = errors.New("username already registered")
	ErrEmailExists            = errors.New("email already registered")
	ErrAccountDisabled        = errors.New("account is disabled")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrHRPrivilegeRequired    = errors.New("hr privilege required")
	ErrInvalidRole            = errors.New("invalid role")
)
