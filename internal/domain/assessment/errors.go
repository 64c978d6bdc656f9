package assessment

import "errors"

var (
	ErrNotConfigured = errors.New("generation service not configured")

	// ErrNoStructuredOutput means the generation service answered without a
	// schema-conforming tool result attached.
	ErrNoStructuredOutput = errors.New("generation service returned no structured output")
)
