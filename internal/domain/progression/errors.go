package progression

import "errors"

var (
	// ErrInvalidContent flags a ladder definition that fails validation.
	ErrInvalidContent = errors.New("invalid progression content")
	// ErrLoadContent flags an unreadable progression file.
	ErrLoadContent = errors.New("load progression content")
)
