package smoke

import "errors"

var (
	// ErrUnhealthy is returned when the service health check fails.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrSubmit is returned when predictions could not be submitted.
	ErrSubmit = errors.New("submission failed")
	// ErrVerification is returned when a response breaks an expected property.
	ErrVerification = errors.New("verification failed")
)
