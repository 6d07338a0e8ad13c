package http

import "github.com/crmarques/bitgo/faults"

const (
	ValidationError = faults.ValidationError
	TransportError  = faults.TransportError
	InternalError   = faults.InternalError
)

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func transportError(message string, cause error) error {
	return faults.NewTypedError(faults.TransportError, message, cause)
}

func internalError(message string, cause error) error {
	return faults.NewTypedError(faults.InternalError, message, cause)
}
