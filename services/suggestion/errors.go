package suggestion

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoDate signals that no booking date could be established from the
// caller or the interpreted prompt.
var ErrNoDate = errors.New("could not determine booking date; please specify a date")

// ErrNoActivities signals that no usable activity survived interpretation.
var ErrNoActivities = errors.New("could not extract any activities from the request")

// ExternalServiceError wraps a language-model failure. It is always caught at
// the call site and converted to a fallback or a scoped failure.
type ExternalServiceError struct {
	Op  string
	Err error
}

func (e ExternalServiceError) Error() string {
	return fmt.Sprintf("external service failure during %s: %v", e.Op, e.Err)
}

func (e ExternalServiceError) Unwrap() error {
	return e.Err
}

// UnsatisfiableError aggregates the per-activity warnings of a request for
// which no activity could be satisfied.
type UnsatisfiableError struct {
	Warnings []string
}

func (e UnsatisfiableError) Error() string {
	return "no suggestions could be generated: " + strings.Join(e.Warnings, " | ")
}
