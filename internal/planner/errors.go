package planner

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that no entity owned by the caller matches the id.
// Cross-owner access reports the same error so existence never leaks.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed caller input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// TransientStoreError wraps a store I/O failure the caller may retry.
type TransientStoreError struct {
	Err error
}

func (e *TransientStoreError) Error() string { return fmt.Sprintf("store: %v", e.Err) }
func (e *TransientStoreError) Unwrap() error { return e.Err }

func storeErr(err error) error {
	return &TransientStoreError{Err: err}
}

// DispatchError reports a failed reminder send for a single task. It is
// logged and swallowed within a scan tick, never surfaced to users.
type DispatchError struct {
	Contact string
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch to %s: %v", e.Contact, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }
