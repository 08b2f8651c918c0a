// Package upstream holds the error taxonomy shared by the third-party
// API clients and the services built on them.
package upstream

import "errors"

var (
	// ErrNotConfigured is returned when a required API credential is absent.
	ErrNotConfigured = errors.New("upstream source not configured")

	// ErrUnavailable is returned on transport failure or a non-success
	// HTTP status from a third-party source.
	ErrUnavailable = errors.New("upstream source unavailable")

	// ErrMalformed is returned when an upstream payload cannot be parsed.
	ErrMalformed = errors.New("upstream payload malformed")

	// ErrNoResults is returned when a search legitimately matched nothing.
	ErrNoResults = errors.New("no results found")
)
