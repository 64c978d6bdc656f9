package evidence

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured = errors.New("evidence service not configured")

	// ErrInsufficientEvidence distinguishes a 2xx response with zero results
	// from transport failures; the orchestrator recovers it into a degraded
	// success response.
	ErrInsufficientEvidence = errors.New("unable to locate sufficient evidence from medical sources")
)

// StatusError reports a non-2xx response from the evidence service. The
// upstream body is deliberately not carried; only the status code matters for
// classification.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("evidence service returned status %d", e.StatusCode)
}
