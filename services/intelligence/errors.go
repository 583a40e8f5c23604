package intelligence

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// ErrorType buckets completion-provider failures for the request handler.
type ErrorType string

const (
	ErrTypeRateLimit      ErrorType = "rate_limit"
	ErrTypeContextTooLong ErrorType = "context_too_long"
	ErrTypeAuthentication ErrorType = "authentication"
	ErrTypeUnknown        ErrorType = "unknown"
)

// ModelError is a classified failure from one backing model.
type ModelError struct {
	Type      ErrorType
	Model     string
	Status    int
	Retryable bool
	Err       error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model %s failed (%s): %v", e.Model, e.Type, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// AllModelsFailedError is terminal for the turn: the whole fallback chain was
// exhausted without a usable completion.
type AllModelsFailedError struct {
	Attempts int
	Last     error
}

func (e *AllModelsFailedError) Error() string {
	return fmt.Sprintf("all models failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *AllModelsFailedError) Unwrap() error { return e.Last }

// Classify maps a provider error onto the taxonomy. Rate limits are retryable
// on the next model; an over-long context or bad credentials will fail on
// every model in the chain, so those abort the fallback loop immediately.
func Classify(model string, err error) *ModelError {
	me := &ModelError{Model: model, Err: err}

	var gerr *googleapi.Error
	code := 0
	if errors.As(err, &gerr) {
		code = gerr.Code
	}
	msg := strings.ToLower(err.Error())

	switch {
	case code == http.StatusTooManyRequests || strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota"):
		me.Type = ErrTypeRateLimit
		me.Status = http.StatusTooManyRequests
		me.Retryable = true
	case strings.Contains(msg, "exceeds the maximum number of tokens") || strings.Contains(msg, "context length") || strings.Contains(msg, "too long"):
		me.Type = ErrTypeContextTooLong
		me.Status = http.StatusRequestEntityTooLarge
		me.Retryable = false
	case code == http.StatusUnauthorized || code == http.StatusForbidden || strings.Contains(msg, "api key"):
		me.Type = ErrTypeAuthentication
		me.Status = http.StatusUnauthorized
		me.Retryable = false
	default:
		me.Type = ErrTypeUnknown
		me.Status = http.StatusInternalServerError
		me.Retryable = true
	}
	return me
}
