package llm

import "errors"

// The model-call failure taxonomy. Only ErrTransient is retryable;
// everything else aborts the run immediately.
var (
	// ErrAuth marks authentication/authorization failures
	ErrAuth = errors.New("model authentication failed")
	// ErrRequest marks requests the provider rejected as malformed or
	// over its limits
	ErrRequest = errors.New("model rejected the request")
	// ErrTransient marks failures expected to resolve by waiting:
	// network faults, rate limits, server errors
	ErrTransient = errors.New("transient model failure")
	// ErrContent marks policy blocks and empty or otherwise unusable
	// answers; retrying will not fix these
	ErrContent = errors.New("model returned no usable content")
)

// Retryable reports whether the error is worth another attempt
func Retryable(err error) bool {
	return errors.Is(err, ErrTransient)
}
