package position

import "errors"

var (
	ErrPositionNotFound    = errors.New("position not found")
	ErrPositionTitleExists = errors.New("position title already exists")
)
