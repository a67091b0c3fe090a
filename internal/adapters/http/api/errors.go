package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrValidation = errors.New("validation failed")
	ErrInternal   = errors.New("internal error")
	ErrNotFound   = errors.New("not found")
)
