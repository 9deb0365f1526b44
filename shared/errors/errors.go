package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies an error into one of the two failure families the SDK
// surfaces to integrators.
type Kind string

const (
	// KindConfiguration covers malformed or incomplete provider
	// configuration, unsupported chains for a named provider, and calls
	// made before successful initialization. Raised synchronously, never
	// after network I/O, never retryable.
	KindConfiguration Kind = "CONFIGURATION"

	// KindRPC covers network-level failures: timeouts, transport errors,
	// exhausted retries and failover. Recoverable, so callers may offer a
	// retry affordance to the end user.
	KindRPC Kind = "RPC"
)

// Error is a structured error with a kind, a stable code, and an optional
// cause chain.
type Error struct {
	Kind        Kind                   `json:"kind"`
	Code        string                 `json:"code"`
	Message     string                 `json:"message"`
	Recoverable bool                   `json:"recoverable"`
	Details     map[string]interface{} `json:"details,omitempty"`
	Cause       error                  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetails attaches a key/value pair to the error.
func (e *Error) WithDetails(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// Config creates a configuration error. Configuration errors are fatal and
// non-retryable.
func Config(code, message string) *Error {
	return &Error{
		Kind:    KindConfiguration,
		Code:    code,
		Message: message,
	}
}

// RPC creates a network-level error. RPC errors are marked recoverable so
// the caller may surface a retry to the user.
func RPC(code, message string) *Error {
	return &Error{
		Kind:        KindRPC,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// IsKind reports whether err (or anything it wraps) is an *Error of the
// given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// IsRecoverable reports whether err is an *Error the caller may retry.
func IsRecoverable(err error) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Recoverable
	}
	return false
}
