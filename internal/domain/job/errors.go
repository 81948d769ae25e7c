package job

import "errors"

var (
	ErrPositionNotFound    = errors.New("job position not found")
	ErrPositionInactive    = errors.New("job position is no longer open")
	ErrApplicationNotFound = errors.New("job application not found")
	ErrInvalidStatus       = errors.New("invalid application status")
)
