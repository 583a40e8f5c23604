package tools

import "fmt"

// ValidationError signals that tool arguments failed schema validation before
// execute ran. It is non-retryable for the same arguments; the caller surfaces
// it as a failed ToolResult so the model can self-correct.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

func invalidArg(field, format string, a ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, a...)}
}
