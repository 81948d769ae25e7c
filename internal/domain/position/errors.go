package position

import "errors"

var (
	ErrPositionNotFound = errors.New("position not found")
	ErrTitleExists      = errors.New("position title already exists")
)
