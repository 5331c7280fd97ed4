package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport signals a network failure or a non-2xx upstream status.
	ErrTransport = errors.New("transport error")
	// ErrMalformedResponse signals an upstream body that is not the expected JSON.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrConfigurationMissing signals required client configuration is absent.
	ErrConfigurationMissing = errors.New("configuration missing")
	// ErrInvalidRequest signals caller input that cannot be sent upstream.
	ErrInvalidRequest = errors.New("invalid request")
)

// TransportError wraps ErrTransport with the failing operation and HTTP status.
// Status is 0 when the request never got a response.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	msg := ErrTransport.Error() + ": " + e.Op
	if e.Status != 0 {
		msg += fmt.Sprintf(": upstream status %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports ErrTransport so callers can match the kind with errors.Is.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func (e *TransportError) Unwrap() error { return e.Err }

// NewTransportError creates a transport error for op.
func NewTransportError(op string, status int, err error) error {
	return &TransportError{Op: op, Status: status, Err: err}
}

// MalformedResponse wraps a decode failure with ErrMalformedResponse.
func MalformedResponse(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrMalformedResponse, err)
}

// ConfigurationMissing reports the missing setting.
func ConfigurationMissing(setting string) error {
	return fmt.Errorf("%w: %s", ErrConfigurationMissing, setting)
}
