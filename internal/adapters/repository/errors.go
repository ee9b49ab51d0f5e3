package repository

import "errors"

// Sentinel kinds for session store errors.
var (
	ErrNotFound  = errors.New("analysis not found")
	ErrInvalidID = errors.New("invalid analysis id")
)
