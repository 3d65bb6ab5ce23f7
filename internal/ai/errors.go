package ai

import (
	"errors"
	"fmt"
)

// ErrNoBackend signals that no completion backend is configured. This is
// terminal and non-retryable; callers surface it as service-unavailable.
var ErrNoBackend = errors.New("no ai backend configured")

// InvocationError reports a failed backend call. Backend names the last
// backend tried; FallbackAttempted is true when a second backend was
// tried after the first failure. Err preserves the underlying failures.
type InvocationError struct {
	Backend           string
	FallbackAttempted bool
	Err               error
}

func (e *InvocationError) Error() string {
	if e.FallbackAttempted {
		return fmt.Sprintf("ai backend %s failed after fallback: %v", e.Backend, e.Err)
	}
	return fmt.Sprintf("ai backend %s failed: %v", e.Backend, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// ParseError reports a structured completion whose payload could not be
// decoded as JSON even after tolerant extraction.
type ParseError struct {
	Backend string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ai backend %s returned malformed JSON: %v", e.Backend, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
