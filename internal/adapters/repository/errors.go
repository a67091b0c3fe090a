package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound = errors.New("student not found")
	ErrOpen     = errors.New("open student store")
	ErrQuery    = errors.New("student store query")
	ErrInvalid  = errors.New("invalid student")
)
