package evaluate

import (
	"errors"
	"fmt"
)

// GenericFailureMessage is shown when the service answered with something unreadable
const GenericFailureMessage = "Something went wrong while checking the text. Please try again."

// StatusError is a non-2xx response from the service
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: %d", e.Code)
}

// TransportError is a failure to reach the service or read its response
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is a 2xx response whose body is not a verdict
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// FailureMessage derives the user-facing message for a failed evaluation
func FailureMessage(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}

	var malformed *MalformedResponseError
	if errors.As(err, &malformed) {
		return GenericFailureMessage
	}

	var transport *TransportError
	if errors.As(err, &transport) {
		return transport.Err.Error()
	}

	if err == nil {
		return GenericFailureMessage
	}
	return err.Error()
}
