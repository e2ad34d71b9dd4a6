package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrInvalidContent = errors.New("invalid catalog content")
	ErrLoadContent    = errors.New("load catalog content failed")
)
