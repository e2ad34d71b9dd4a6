package repository

import "errors"

// Sentinel kinds for save-store errors.
var (
	ErrNotFound    = errors.New("save not found")
	ErrStoreClosed = errors.New("save store closed")
)
