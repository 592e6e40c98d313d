package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidPayload is matched by every ValidationError through errors.Is.
var ErrInvalidPayload = errors.New("invalid payload")

// ValidationError reports a payload that violates a structural invariant.
// It is always raised before any request is sent.
type ValidationError struct {
	// Kind names the payload being validated, e.g. "persistent menu".
	Kind   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Kind, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidPayload
}

func invalid(kind, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}
