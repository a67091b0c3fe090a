package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrOpen          = errors.New("dataset open failed")
	ErrParse         = errors.New("dataset parse failed")
	ErrEmpty         = errors.New("dataset is empty")
	ErrUnknownColumn = errors.New("unknown dataset column")
)
