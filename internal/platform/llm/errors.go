package llm

import "fmt"

// StatusError reports an HTTP-level failure from the generation service.
// Upstream error bodies are not carried past this point.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("generation service returned status %d", e.StatusCode)
}
