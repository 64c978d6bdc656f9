package intake

import "strings"

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required patient information: " + strings.Join(e.Fields, ", ")
}
