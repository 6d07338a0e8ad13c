package faults

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorCategory string

const (
	ValidationError       ErrorCategory = "ValidationError"
	MissingParameterError ErrorCategory = "MissingParameterError"
	NotFoundError         ErrorCategory = "NotFoundError"
	TransportError        ErrorCategory = "TransportError"
	InternalError         ErrorCategory = "InternalError"
)

type TypedError struct {
	Category ErrorCategory
	Message  string
	Cause    error

	// Parameters names the offending request fields of a MissingParameterError.
	Parameters []string
	// StatusCode and Body are set on a TransportError when the remote answered.
	StatusCode int
	Body       []byte
}

func (e *TypedError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" && e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return string(e.Category)
}

func (e *TypedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewTypedError(category ErrorCategory, message string, cause error) *TypedError {
	return &TypedError{
		Category: category,
		Message:  message,
		Cause:    cause,
	}
}

// NewMissingParameterError reports required fields of resourceName that were
// not set when the request was about to be composed.
func NewMissingParameterError(resourceName string, parameters ...string) *TypedError {
	names := append([]string(nil), parameters...)

	label := "parameter"
	if len(names) > 1 {
		label = "parameters"
	}
	message := fmt.Sprintf("missing required %s %s", label, strings.Join(quoteAll(names), ", "))
	if strings.TrimSpace(resourceName) != "" {
		message = fmt.Sprintf("%s: %s", resourceName, message)
	}

	return &TypedError{
		Category:   MissingParameterError,
		Message:    message,
		Parameters: names,
	}
}

// NewStatusError reports a completed exchange whose status code is not a
// success.
func NewStatusError(statusCode int, body []byte) *TypedError {
	return &TypedError{
		Category:   TransportError,
		Message:    fmt.Sprintf("remote request failed with status %d: %s", statusCode, summarizeBody(body)),
		StatusCode: statusCode,
		Body:       append([]byte(nil), body...),
	}
}

func IsCategory(err error, category ErrorCategory) bool {
	if err == nil {
		return false
	}

	var typedErr *TypedError
	if !errors.As(err, &typedErr) {
		return false
	}
	return typedErr.Category == category
}

// MissingParameters returns the field names carried by a MissingParameterError
// anywhere in err's chain.
func MissingParameters(err error) []string {
	var typedErr *TypedError
	if !errors.As(err, &typedErr) || typedErr.Category != MissingParameterError {
		return nil
	}
	return append([]string(nil), typedErr.Parameters...)
}

// StatusCode returns the remote status code of a TransportError, or 0 when
// the exchange never completed.
func StatusCode(err error) int {
	var typedErr *TypedError
	if !errors.As(err, &typedErr) || typedErr.Category != TransportError {
		return 0
	}
	return typedErr.StatusCode
}

func quoteAll(values []string) []string {
	quoted := make([]string, len(values))
	for idx, value := range values {
		quoted[idx] = fmt.Sprintf("%q", value)
	}
	return quoted
}

func summarizeBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "<empty>"
	}
	if len(trimmed) > 512 {
		return trimmed[:512] + "..."
	}
	return trimmed
}
