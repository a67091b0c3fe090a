package site

import "errors"

// Sentinel kinds for dashboard page errors.
var (
	ErrRender = errors.New("dashboard render failed")
)
