package errors

import (
	"encoding/json"
	"fmt"
)

// errorBody is the shape the backend uses for failures.
type errorBody struct {
	Detail string `json:"detail"`
}

// FromResponse normalizes a non-success HTTP response into a ClassifiedError.
// The body, when present, is the backend's {"detail": ...} payload.
func FromResponse(operation string, statusCode int, body []byte) *ClassifiedError {
	detail := ""
	if len(body) > 0 {
		var eb errorBody
		if err := json.Unmarshal(body, &eb); err == nil {
			detail = eb.Detail
		}
	}
	return &ClassifiedError{
		Kind:       kindForStatus(statusCode),
		Category:   categoryForStatus(statusCode),
		StatusCode: statusCode,
		Detail:     detail,
		Underlying: fmt.Errorf("%s: status %d", operation, statusCode),
	}
}

// NewNetworkError creates a classified error for transport-level failures.
// Network errors are always recoverable as they may be transient.
func NewNetworkError(operation string, err error) *ClassifiedError {
	return &ClassifiedError{
		Kind:       KindRemote,
		Category:   Recoverable,
		Underlying: fmt.Errorf("%s: %w", operation, err),
	}
}

func kindForStatus(statusCode int) Kind {
	switch statusCode {
	case 401, 403:
		return KindAuth
	case 400, 422:
		return KindValidation
	case 404:
		return KindNotFound
	case 409:
		return KindConflict
	default:
		return KindRemote
	}
}

func categoryForStatus(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408, 429: // timeouts and throttling may clear up on retry
			return Recoverable
		default:
			return Irrecoverable
		}
	default:
		// 5xx and anything unexpected: be conservative and allow retry.
		return Recoverable
	}
}
