// Package errors provides error classification for the client core.
// Every remote failure is normalized into a *ClassifiedError carrying both a
// Kind (what went wrong, used by callers) and a Category (whether retrying
// could help, used by the job executor's retry gate).
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory determines how errors should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors may be retried with exponential backoff.
	// Examples: 5xx responses, network timeouts, connection failures.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors fail immediately without retry.
	// Examples: 401 Unauthorized, 404 Not Found, validation rejections.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Kind names the failure taxonomy the core exposes to callers.
type Kind int

const (
	// KindRemote covers transport errors, timeouts, and 5xx responses.
	KindRemote Kind = iota
	// KindAuth covers invalid credentials and expired or invalid tokens.
	KindAuth
	// KindValidation covers malformed input rejected before or by the server.
	KindValidation
	// KindNotFound covers requests addressing a resource that does not exist.
	KindNotFound
	// KindConflict covers duplicate in-flight operations on the same resource.
	KindConflict
)

// String returns the taxonomy name for the kind.
func (k Kind) String() string {
	switch k {
	case KindRemote:
		return "RemoteFailure"
	case KindAuth:
		return "AuthError"
	case KindValidation:
		return "ValidationError"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "ConcurrencyConflict"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// ClassifiedError wraps an error with categorization metadata.
type ClassifiedError struct {
	Kind       Kind
	Category   ErrorCategory
	StatusCode int    // HTTP status code (0 for non-HTTP errors)
	Detail     string // server-provided detail message, if any
	Underlying error  // the original error
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	if e.StatusCode > 0 {
		if e.Detail != "" {
			return fmt.Sprintf("[%s] HTTP %d: %s", e.Kind, e.StatusCode, e.Detail)
		}
		return fmt.Sprintf("[%s] HTTP %d: %v", e.Kind, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %v", e.Kind, e.Underlying)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *ClassifiedError) Unwrap() error {
	return e.Underlying
}

// KindOf extracts the Kind from an error chain; non-classified errors
// report KindRemote.
func KindOf(err error) Kind {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindRemote
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, k Kind) bool {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Kind == k
	}
	return false
}

// IsIrrecoverable returns true if the error should not be retried.
func IsIrrecoverable(err error) bool {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Category == Irrecoverable
	}
	return false
}

// New wraps underlying with a kind. Remote errors stay retryable; every
// other kind is a definitive rejection.
func New(kind Kind, underlying error) *ClassifiedError {
	cat := Irrecoverable
	if kind == KindRemote {
		cat = Recoverable
	}
	return &ClassifiedError{
		Kind:       kind,
		Category:   cat,
		Underlying: underlying,
	}
}
