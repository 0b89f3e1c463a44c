package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog loading
var (
	// ErrRateLimited indicates the catalog endpoint returned HTTP 429
	ErrRateLimited = errors.New("catalog endpoint rate limited")

	// ErrBadStatus indicates a non-success HTTP response
	ErrBadStatus = errors.New("catalog request failed")

	// ErrMalformedDocument indicates the catalog body could not be parsed
	ErrMalformedDocument = errors.New("catalog document is malformed")
)

// LoadError is returned once every retry budget is exhausted. It carries
// the last underlying cause; callers should present it as retryable.
type LoadError struct {
	Attempts int
	Cause    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog load failed after %d attempts: %v (please retry)", e.Attempts, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
