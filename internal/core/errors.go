package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRejected is returned when a check produced a negative verdict. It is a
// normal outcome, not a malfunction, and maps to exit code 1.
var ErrRejected = errors.New("pull request rejected")

// ConfigurationError reports missing credentials or environment variables.
// It is never retried.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration: %s", strings.Join(e.Missing, ", "))
}

// ProviderError is returned when the completion endpoint did not produce a
// usable answer within the allowed number of attempts.
type ProviderError struct {
	Provider string
	Attempts int
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider failed after %d attempt(s): %v", e.Provider, e.Attempts, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ParseError rejects a model response that does not have the expected shape.
type ParseError struct {
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return "invalid model response: " + e.Reason
	}
	return fmt.Sprintf("invalid model response: field %q %s", e.Field, e.Reason)
}

// CollaboratorError wraps a failed call to the code hosting API.
type CollaboratorError struct {
	Operation  string
	StatusCode int
	Err        error
}

func (e *CollaboratorError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed with status %d: %v", e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }
