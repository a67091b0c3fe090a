package regression

import "errors"

// Sentinel kinds for regression errors.
var (
	ErrInvalidInput  = errors.New("invalid regression input")
	ErrTooFewSamples = errors.New("too few samples")
	ErrSingular      = errors.New("singular design matrix")
)
