package backdrop

import "errors"

var (
	// ErrNoSurface is returned by Mount when the host has no drawing surface
	ErrNoSurface = errors.New("backdrop: drawing surface unavailable")

	// ErrInvalidConfig wraps every Config validation failure
	ErrInvalidConfig = errors.New("backdrop: invalid config")

	// ErrMounted is returned by Mount on a component that is already mounted
	ErrMounted = errors.New("backdrop: already mounted")
)
