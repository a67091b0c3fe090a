package client

import (
	"errors"
	"fmt"
)

// Sentinel kinds for client errors.
var (
	// ErrRequest marks a response with a non-success status.
	ErrRequest = errors.New("request rejected")
	// ErrConnectivity marks transport failures and undecodable responses.
	ErrConnectivity = errors.New("server unreachable")
)

// RequestError is a non-success response. Detail carries the server's
// "detail" field when present.
type RequestError struct {
	StatusCode int
	Detail     string
}

func (e *RequestError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Detail)
}

// Is reports whether target is ErrRequest.
func (e *RequestError) Is(target error) bool { return target == ErrRequest }
