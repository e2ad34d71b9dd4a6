package upgrade

import "errors"

var (
	// ErrInvalidContent flags an upgrade definition that fails validation.
	ErrInvalidContent = errors.New("invalid upgrade content")
	// ErrLoadContent flags an unreadable upgrades file.
	ErrLoadContent = errors.New("load upgrade content")
)
