package auth

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrInvalidToken         = errors.New("invalid or unknown token")
	ErrTokenExpired         = errors.New("token has expired")
	ErrTokenUsed            = errors.New("token has already been used")
	ErrAccountDisabled      = errors.New("account is disabled")
	ErrTooManyResetRequests = errors.New("too many password reset requests, try again later")
	ErrWrongPassword        = errors.New("current password is incorrect")
)
